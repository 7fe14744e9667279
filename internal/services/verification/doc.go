/*
Package verification owns the wallet verification lifecycle: proving that a
claimed ledger address belongs to the user who registered it.

A registration issues a one-time code and a 15-minute window. The user sends a
small payment carrying that code as the memo to the operator's deposit
address; the service observes the deposit address's recent payments and flips
the wallet to verified when a qualifying payment appears. Verification is
driven from two sides that may race on the same wallet row: the user-triggered
Check and the background SweepOnce pass. Both funnel through the same matching
logic, and the success transition is a conditional update that only applies
while the wallet is still pending, so exactly one of the racers wins.

Known limitation: only the most recent 20 payments to the deposit address are
inspected. On a busy deposit address a qualifying payment can get buried below
the window before it is seen; the caller's remedy is to check again or
re-register.
*/
package verification
