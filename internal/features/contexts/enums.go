package contexts

type ContextKind string

const (
	ContextKindPopup      ContextKind = "popup"
	ContextKindContent    ContextKind = "content"
	ContextKindBackground ContextKind = "background"
)

func (k ContextKind) IsValid() bool {
	switch k {
	case ContextKindPopup, ContextKindContent, ContextKindBackground:
		return true
	default:
		return false
	}
}
