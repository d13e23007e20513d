package systemprompt

// ContextProvider supplies an extra titled info block appended to the system prompt
type ContextProvider interface {
	Title() string
	Info() string
}
