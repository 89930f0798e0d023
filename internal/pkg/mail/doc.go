// Package mail is the outbound email contract.
//
// Dispatchers depend on the Mail interface and Message payload only; the
// concrete transport (SMTP here, an API provider if one is ever needed)
// stays behind it.
package mail
