package chat

type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Turn is one utterance of the running conversation. The client owns
// the full history and re-sends it on every call; nothing is persisted
// server-side.
type Turn struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

func ValidRole(r Role) bool {
	return r == RoleUser || r == RoleAssistant
}
