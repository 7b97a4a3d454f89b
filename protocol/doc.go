/*
Package protocol defines the messages a ledger client exchanges with
ledger nodes when it audits a ledger, and the errors and check results
those exchanges produce.

A node answers a read with a Reply: the transaction payload, its
sequence number, and an audit path proving the transaction is part of
the ledger tree the node claims. Separately, nodes hand out
CheckpointUpdates: a newer (size, root) checkpoint together with a
consistency proof from a checkpoint the client already trusts.

The verification itself lives in the auditor and auditlog
subpackages; package ledger builds these messages for a ledger held
in memory or in a kv store.
*/
package protocol
