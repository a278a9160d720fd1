package cmd

// SessionsCmd plans and inspects coaching sessions in the session store
type SessionsCmd struct {
	Add  SessionsAddCmd  `cmd:"add" help:"Plan a session for a client"`
	List SessionsListCmd `cmd:"list" help:"List the sessions planned on a date" default:"1"`
}
