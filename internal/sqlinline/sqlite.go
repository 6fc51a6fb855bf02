package sqlinline

// SQLite variants of the ledger statements. Times are unix milliseconds and
// amounts are decimal text.

const QSQLiteEnsureJournal = `--sql f221df04-962e-4bdb-ac64-d8e6b84c9063
create table if not exists ledger_journal (
  seq integer primary key,
  kind text not null,
  project_id integer not null default 0,
  principal text not null default '',
  amount text not null default '0',
  tokens text not null default '0',
  name text not null default '',
  description text not null default '',
  fund_goal text not null default '0',
  end_time_ms integer,
  at_ms integer not null
);
`

const QSQLiteInsertJournal = `--sql 67035259-a96d-40a1-9946-962331ec664c
insert into ledger_journal(seq, kind, project_id, principal, amount, tokens, name, description, fund_goal, end_time_ms, at_ms)
values (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?);
`

const QSQLiteJournalHead = `--sql 435e0587-3408-4395-a859-109a7ff924ba
select coalesce(max(seq), 0) from ledger_journal;
`

const QSQLiteListJournalAfter = `--sql bd20dcb9-104b-4a50-9af4-a5a8d6f2c3bf
select seq, kind, project_id, principal, amount, tokens, name, description, fund_goal, end_time_ms, at_ms
from ledger_journal
where seq > ?
order by seq asc
limit ?;
`

const QSQLiteEnsurePayouts = `--sql 278be91a-4ce8-4c36-b9ad-56571ef5a21e
create table if not exists ledger_payouts (
  id text primary key,
  kind text not null,
  recipient text not null,
  amount text not null default '0',
  tokens text not null default '0',
  project_id integer,
  reason text not null default '',
  created_at_ms integer not null
);
`

const QSQLiteEnsurePayoutsIndex = `--sql fc49575a-ac4b-486d-b213-876f41dd2519
create index if not exists ledger_payouts_recipient_idx on ledger_payouts(recipient, created_at_ms desc);
`

const QSQLiteInsertPayout = `--sql b7f19b1a-70cb-4f33-9187-1d77fc41dec1
insert into ledger_payouts(id, kind, recipient, amount, tokens, project_id, reason, created_at_ms)
values (?, ?, ?, ?, ?, ?, ?, ?);
`

const QSQLiteListPayoutsByRecipient = `--sql 0946e30b-59bc-4a3e-8198-2237af444e8c
select kind, recipient, amount, tokens, project_id, reason, created_at_ms
from ledger_payouts
where recipient = ?
order by created_at_ms desc, rowid desc
limit ?;
`
