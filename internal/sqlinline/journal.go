package sqlinline

const QEnsureJournal = `--sql ea520211-5166-4e47-ae90-a404368cfee7
create table if not exists ledger_journal (
  seq bigint primary key,
  kind text not null,
  project_id bigint not null default 0,
  principal text not null default '',
  amount numeric(20,0) not null default 0,
  tokens numeric(20,0) not null default 0,
  name text not null default '',
  description text not null default '',
  fund_goal numeric(20,0) not null default 0,
  end_time timestamptz,
  at timestamptz not null
);
`

const QInsertJournal = `--sql 901545fc-d9e5-4a23-ac97-e2e24294fa27
insert into ledger_journal(seq, kind, project_id, principal, amount, tokens, name, description, fund_goal, end_time, at)
values ($1::bigint, $2::text, $3::bigint, $4::text, $5::numeric, $6::numeric, $7::text, $8::text, $9::numeric, $10::timestamptz, $11::timestamptz);
`

const QJournalHead = `--sql 0a146e1e-c301-4799-b51c-f173c10adc65
select coalesce(max(seq), 0)::bigint from ledger_journal;
`

const QListJournalAfter = `--sql 753d7d41-5e16-4d69-9fa7-3e32642ec6a8
select seq, kind, project_id, principal, amount::text, tokens::text, name, description, fund_goal::text, end_time, at
from ledger_journal
where seq > $1::bigint
order by seq asc
limit $2::int;
`
