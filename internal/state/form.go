package state

// Messages shown by the create-task form.
const (
	MessageCreated        = "Task created successfully!"
	MessageInvalidDueDate = "Invalid due date."
	MessageCreateFailed   = "Failed to create task."
)

// CreateForm is the create-task form. Fields are cleared only after a
// confirmed create.
type CreateForm struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	DueDate     string `json:"due_date"`
	Message     string `json:"message,omitempty"`
	Success     bool   `json:"success"`
}

// Succeed clears the inputs and shows the success message.
func (f *CreateForm) Succeed() {
	f.Title = ""
	f.Description = ""
	f.DueDate = ""
	f.Message = MessageCreated
	f.Success = true
}

// Fail keeps the inputs and shows msg.
func (f *CreateForm) Fail(msg string) {
	f.Message = msg
	f.Success = false
}

// Cancel clears inputs and message.
func (f *CreateForm) Cancel() {
	*f = CreateForm{}
}
