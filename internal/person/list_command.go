package person

const (
	ListCommandWord = "ls"

	ListDescription = "Lists all current persons in the address book."

	// MessageListSuccess is the textual result of a successful list command.
	MessageListSuccess = "Listed all persons"
)

// CommandResult carries the user-facing outcome of a command.
type CommandResult struct {
	Message string `json:"message"`
}

// ListCommand resets the filtered view to show every person. It has no
// failure path.
type ListCommand struct{}

func (ListCommand) Execute(m *Model) CommandResult {
	m.UpdateFilteredPersonList(PredicateShowAll)
	return CommandResult{Message: MessageListSuccess}
}
