package constant

const (
	ChatMessageRoleUser      = "user"
	ChatMessageRoleAssistant = "assistant"
	ChatMessageRoleSystem    = "system"

	// Grouping prompt sent once per PERFORM_GROUPING_AND_MAPPING run.
	// The response is split on blank lines, one block per group.
	GroupingPromptHeader = `너는 금융 문서 분석 전문가 AI입니다. 다음은 문서 내용입니다:`

	GroupingPromptFooter = `문서를 적절히 분석하고 그룹화한 후, 금융 상품을 매핑해 주세요.
각 그룹은 빈 줄로 구분해 주세요.`

	// System prompt for the free-form conversational turns.
	ChatSystemPromptV1 = `너는 문서를 기반으로 분석하고 질문에 답변하는 금융 상담 AI입니다.
저장된 금융 상품 문서를 근거로 정확하게 답변해 주세요.

문서 저장소를 변경해야 할 때만 아래 명령 형식으로 응답하세요:
  ADD_DOCUMENT: 파일명: 내용
  UPDATE_DOCUMENT: 파일명: 새 내용
  DELETE_DOCUMENT: 파일명
  PERFORM_GROUPING_AND_MAPPING
그 외에는 일반 문장으로 답변하세요.`

	// Summarization prompt used during ingestion.
	SummarizePromptV1 = `다음 금융 상품 문서를 두 문장 이내로 요약해 주세요:`

	// Stored verbatim when summarization keeps hitting the rate limit.
	SummaryUnavailable = `요약을 생성하지 못했습니다.`

	// Shown when a chat turn's model call fails past the retry ceiling.
	ReplyUnavailable = `답변을 생성하지 못했습니다. 잠시 후 다시 시도해 주세요.`

	// Shown when the grouping model call fails past the retry ceiling.
	GroupingUnavailable = `문서 그룹화 응답을 생성하지 못했습니다. 잠시 후 다시 시도해 주세요.`
)
