package enum

type ChatType string

const (
	ChatTypePrivate ChatType = "PRIVATE"
	ChatTypeGroup   ChatType = "GROUP"
)

func (t ChatType) Valid() bool {
	return t == ChatTypePrivate || t == ChatTypeGroup
}
