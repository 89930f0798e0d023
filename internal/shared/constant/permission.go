package constant

// Casbin policy objects and actions.
const (
	PermAccountMgmtUsers string = "account:mgmt:users"

	PermActRead   string = "read"
	PermActUpdate string = "update"
)
