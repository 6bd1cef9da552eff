package classifier

import (
	"testing"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		text string
		want Category
	}{
		{
			name: "deposit keywords",
			text: "이 상품은 정기예금 으로 만기까지 이자 를 지급합니다",
			want: CategoryDeposit,
		},
		{
			name: "savings keywords",
			text: "매월 납입 하는 적금 상품으로 저축 습관을 길러줍니다",
			want: CategorySavings,
		},
		{
			name: "bond keywords",
			text: "국채 와 회사채 의 수익률 비교, 신용등급 별 채권 안내",
			want: CategoryBond,
		},
		{
			name: "youth keywords",
			text: "청년도약계좌 안내",
			want: CategoryYouth,
		},
		{
			name: "no keywords",
			text: "오늘 날씨가 참 좋습니다",
			want: CategoryUnclassified,
		},
		{
			name: "empty text",
			text: "",
			want: CategoryUnclassified,
		},
		{
			name: "embedded word does not match",
			// 정기 appears only inside 정기예금, so the savings phrase
			// must not fire on it.
			text: "정기예금",
			want: CategoryDeposit,
		},
		{
			name: "tie breaks by declaration order",
			// One bond phrase and one savings phrase, both weight 5.
			text: "국채 그리고 저축",
			want: CategoryBond,
		},
		{
			name: "multi word phrase",
			text: "고정 금리 상품",
			want: CategoryDeposit,
		},
		{
			name: "case insensitive latin text",
			text: "this brochure mentions 예금 products",
			want: CategoryDeposit,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Classify(tt.text)
			if got != tt.want {
				t.Errorf("Classify(%q) = %q, want %q", tt.text, got, tt.want)
			}
		})
	}
}

func TestClassifyIsDeterministic(t *testing.T) {
	text := "청년희망적금 과 정기예금 중 어떤 상품이 좋을까요? 이자 와 납입 조건을 비교해 주세요"
	first := Classify(text)
	for i := 0; i < 50; i++ {
		if got := Classify(text); got != first {
			t.Fatalf("Classify not deterministic: run %d got %q, first run %q", i, got, first)
		}
	}
}

func TestScoreCountsPhraseOnce(t *testing.T) {
	// 이자 twice must still contribute the deposit weight once.
	res := Score("이자 와 이자")
	if res.Category != CategoryDeposit {
		t.Fatalf("Category = %q, want %q", res.Category, CategoryDeposit)
	}
	if res.Score != 5 {
		t.Errorf("Score = %d, want 5 (phrase weight counted once)", res.Score)
	}
}

func TestScoreNonNegative(t *testing.T) {
	for _, text := range []string{"", "abc", "예금", "채권 수익률"} {
		if res := Score(text); res.Score < 0 {
			t.Errorf("Score(%q) = %d, want >= 0", text, res.Score)
		}
	}
}
