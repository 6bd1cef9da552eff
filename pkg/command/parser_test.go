package command

import "testing"

func TestParse(t *testing.T) {
	tests := []struct {
		name   string
		output string
		want   Command
	}{
		{
			name:   "delete document",
			output: "DELETE_DOCUMENT: 정기예금A.pdf",
			want:   Command{Name: DeleteDocument, Filename: "정기예금A.pdf"},
		},
		{
			name:   "add document with two args",
			output: "ADD_DOCUMENT: 청년적금.pdf: 월 50만원 납입 한도의 청년 전용 적금",
			want:   Command{Name: AddDocument, Filename: "청년적금.pdf", Content: "월 50만원 납입 한도의 청년 전용 적금"},
		},
		{
			name:   "update document",
			output: "UPDATE_DOCUMENT: 국채안내.pdf: 만기 3년 국채 금리 변경",
			want:   Command{Name: UpdateDocument, Filename: "국채안내.pdf", Content: "만기 3년 국채 금리 변경"},
		},
		{
			name:   "grouping takes no arguments",
			output: "PERFORM_GROUPING_AND_MAPPING",
			want:   Command{Name: PerformGroupingAndMapping},
		},
		{
			name:   "command name is case insensitive",
			output: "delete_document: foo.pdf",
			want:   Command{Name: DeleteDocument, Filename: "foo.pdf"},
		},
		{
			name:   "surrounding whitespace is tolerated",
			output: "  DELETE_DOCUMENT:   foo.pdf  ",
			want:   Command{Name: DeleteDocument, Filename: "foo.pdf"},
		},
		{
			name:   "plain text passes through verbatim",
			output: "안녕하세요! 어떤 상품을 찾으시나요?",
			want:   Command{Name: PlainReply, Text: "안녕하세요! 어떤 상품을 찾으시나요?"},
		},
		{
			name:   "add without second argument falls back",
			output: "ADD_DOCUMENT: foo.pdf",
			want:   Command{Name: PlainReply, Text: "ADD_DOCUMENT: foo.pdf"},
		},
		{
			name:   "delete without argument falls back",
			output: "DELETE_DOCUMENT:",
			want:   Command{Name: PlainReply, Text: "DELETE_DOCUMENT:"},
		},
		{
			name:   "unknown command falls back",
			output: "RENAME_DOCUMENT: a.pdf: b.pdf",
			want:   Command{Name: PlainReply, Text: "RENAME_DOCUMENT: a.pdf: b.pdf"},
		},
		{
			name:   "colon inside plain text is not a command",
			output: "참고: 예금자 보호 한도는 5천만원입니다",
			want:   Command{Name: PlainReply, Text: "참고: 예금자 보호 한도는 5천만원입니다"},
		},
		{
			name:   "empty output is a plain reply",
			output: "",
			want:   Command{Name: PlainReply, Text: ""},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Parse(tt.output)
			if got != tt.want {
				t.Errorf("Parse(%q) = %+v, want %+v", tt.output, got, tt.want)
			}
		})
	}
}
