package command

import "strings"

type Name string

const (
	AddDocument               Name = "ADD_DOCUMENT"
	DeleteDocument            Name = "DELETE_DOCUMENT"
	UpdateDocument            Name = "UPDATE_DOCUMENT"
	PerformGroupingAndMapping Name = "PERFORM_GROUPING_AND_MAPPING"
	PlainReply                Name = "PLAIN_REPLY"
)

// Command is the decoded form of one model turn. Exactly one variant
// applies; Text carries the original output for PlainReply.
type Command struct {
	Name     Name
	Filename string
	Content  string
	Text     string
}

// Parse decodes model output against the COMMAND: arg1[: arg2] grammar.
// Command names match case-insensitively. Anything malformed or with
// missing arguments falls back to PlainReply with the output unchanged.
func Parse(output string) Command {
	trimmed := strings.TrimSpace(output)

	head := trimmed
	rest := ""
	if idx := strings.Index(trimmed, ":"); idx >= 0 {
		head = trimmed[:idx]
		rest = strings.TrimSpace(trimmed[idx+1:])
	}

	switch Name(strings.ToUpper(strings.TrimSpace(head))) {
	case AddDocument:
		filename, content, ok := splitArgs(rest)
		if !ok {
			break
		}
		return Command{Name: AddDocument, Filename: filename, Content: content}
	case UpdateDocument:
		filename, content, ok := splitArgs(rest)
		if !ok {
			break
		}
		return Command{Name: UpdateDocument, Filename: filename, Content: content}
	case DeleteDocument:
		if rest == "" {
			break
		}
		return Command{Name: DeleteDocument, Filename: rest}
	case PerformGroupingAndMapping:
		return Command{Name: PerformGroupingAndMapping}
	}

	return Command{Name: PlainReply, Text: output}
}

// splitArgs splits on the first remaining colon into filename and
// content. Both parts must be non-empty.
func splitArgs(rest string) (string, string, bool) {
	idx := strings.Index(rest, ":")
	if idx < 0 {
		return "", "", false
	}
	filename := strings.TrimSpace(rest[:idx])
	content := strings.TrimSpace(rest[idx+1:])
	if filename == "" || content == "" {
		return "", "", false
	}
	return filename, content, true
}
