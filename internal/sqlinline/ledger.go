package sqlinline

// QLockLedger serializes allocation commits for the rest of the transaction.
const QLockLedger = `--sql b3cbac76-8b3b-4b8e-81ea-4e0f0a456af3
select pg_advisory_xact_lock($1::bigint);
`
