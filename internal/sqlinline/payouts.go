package sqlinline

const QEnsurePayouts = `--sql 55893ac4-9a4d-4e93-90d1-6fb377b4fa8f
create table if not exists ledger_payouts (
  id uuid primary key,
  kind text not null,
  recipient text not null,
  amount numeric(20,0) not null default 0,
  tokens numeric(20,0) not null default 0,
  project_id bigint,
  reason text not null default '',
  created_at timestamptz not null
);
`

const QEnsurePayoutsIndex = `--sql 5bf912e2-b678-4308-a081-cc12d5fe9952
create index if not exists ledger_payouts_recipient_idx on ledger_payouts(recipient, created_at desc);
`

const QInsertPayout = `--sql ce711054-784d-4e40-8a26-a200aa072ae5
insert into ledger_payouts(id, kind, recipient, amount, tokens, project_id, reason, created_at)
values ($1::uuid, $2::text, $3::text, $4::numeric, $5::numeric, $6::bigint, $7::text, $8::timestamptz);
`

const QListPayoutsByRecipient = `--sql adc40922-e217-423c-944d-c6acbf131eea
select kind, recipient, amount::text, tokens::text, project_id, reason, created_at
from ledger_payouts
where recipient = $1::text
order by created_at desc, id
limit $2::int;
`
