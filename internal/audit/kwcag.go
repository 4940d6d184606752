package audit

import (
	"fmt"
	"sort"
)

// Guideline is a KWCAG 2.2 check item an axe rule reports against
type Guideline struct {
	Seq  int
	Code string
	Name string

	// Korean wording shown in reports in place of the engine's text
	Description string
	Help        string
}

// OtherCode marks rules with no KWCAG counterpart
const OtherCode = "기타"

var otherGuideline = Guideline{Seq: 0, Code: OtherCode, Name: "WCAG 기준"}

var ruleGuidelines = map[string]Guideline{
	// 1. 1.1.1
	"image-alt": {
		Seq: 1, Code: "1.1.1", Name: "적절한 대체 텍스트 제공",
		Description: "이미지에 대체 텍스트(alt 속성)가 없습니다",
		Help:        "모든 이미지 요소에 대체 텍스트를 제공하세요. 장식용 이미지는 alt=\"\"를 사용하세요",
	},
	"input-image-alt": {
		Seq: 1, Code: "1.1.1", Name: "적절한 대체 텍스트 제공",
		Description: "이미지 버튼에 대체 텍스트가 없습니다",
		Help:        "type=\"image\"인 input 요소에 alt 속성을 추가하세요",
	},
	"area-alt": {
		Seq: 1, Code: "1.1.1", Name: "적절한 대체 텍스트 제공",
		Description: "이미지 맵 영역에 대체 텍스트가 없습니다",
		Help:        "area 요소에 alt 속성을 추가하세요",
	},
	"object-alt": {
		Seq: 1, Code: "1.1.1", Name: "적절한 대체 텍스트 제공",
		Description: "object 요소에 대체 텍스트가 없습니다",
		Help:        "object 요소 내부에 대체 콘텐츠를 제공하세요",
	},
	"svg-img-alt": {
		Seq: 1, Code: "1.1.1", Name: "적절한 대체 텍스트 제공",
		Description: "SVG 이미지에 대체 텍스트가 없습니다",
		Help:        "SVG 요소에 title 또는 aria-label을 제공하세요",
	},
	"role-img-alt": {
		Seq: 1, Code: "1.1.1", Name: "적절한 대체 텍스트 제공",
		Description: "role=\"img\"인 요소에 대체 텍스트가 없습니다",
		Help:        "role=\"img\"인 요소에 aria-label 또는 aria-labelledby를 추가하세요",
	},
	"image-redundant-alt": {
		Seq: 1, Code: "1.1.1", Name: "적절한 대체 텍스트 제공(중복)",
		Description: "이미지 대체 텍스트가 중복됩니다",
		Help:        "이미지의 alt 텍스트가 주변 텍스트와 중복되지 않도록 수정하세요",
	},
	// 2. 1.2.1
	"video-caption": {
		Seq: 2, Code: "1.2.1", Name: "자막 제공",
		Description: "동영상에 자막이 제공되지 않습니다",
		Help:        "멀티미디어 콘텐츠에 자막 또는 대본을 제공하세요",
	},
	"audio-caption": {
		Seq: 2, Code: "1.2.1", Name: "자막 제공",
		Description: "오디오에 대본이 제공되지 않습니다",
		Help:        "오디오 콘텐츠에 대본을 제공하세요",
	},
	// 3. 1.3.1
	"link-in-text-block": {
		Seq: 3, Code: "1.3.1", Name: "색에 무관한 콘텐츠 인식",
		Description: "텍스트 블록 내 링크가 주변 텍스트와 구분되지 않습니다",
		Help:        "링크는 색상만이 아닌 밑줄 등 다른 시각적 요소로도 구분되어야 합니다",
	},
	// 5. 1.3.3
	"color-contrast": {
		Seq: 5, Code: "1.3.3", Name: "텍스트 콘텐츠의 명도 대비",
		Description: "텍스트와 배경의 명도 대비가 4.5:1 미만입니다",
		Help:        "텍스트와 배경의 명도 대비를 4.5:1 이상으로 조정하세요. 큰 텍스트(18pt 이상)는 3:1 이상",
	},
	// 6. 1.3.4
	"autoplay-audio": {
		Seq: 6, Code: "1.3.4", Name: "자동 재생 금지",
		Description: "오디오/비디오가 자동으로 재생됩니다",
		Help:        "3초 이상의 오디오/비디오는 자동 재생을 금지하거나 정지 기능을 제공하세요",
	},
	// 8. 2.1.1
	"scrollable-region-focusable": {
		Seq: 8, Code: "2.1.1", Name: "키보드 사용 보장",
		Description: "스크롤 가능한 영역이 키보드로 접근할 수 없습니다",
		Help:        "스크롤 가능한 영역에 tabindex=\"0\"을 추가하여 키보드 접근을 보장하세요",
	},
	"accesskeys": {
		Seq: 8, Code: "2.1.1", Name: "키보드 사용 보장",
		Description: "accesskey 속성이 중복되거나 충돌합니다",
		Help:        "각 accesskey는 페이지 내에서 고유해야 하며, 브라우저 단축키와 충돌하지 않아야 합니다",
	},
	"keyboard-navigable": {
		Seq: 8, Code: "2.1.1", Name: "키보드 사용 보장",
		Description: "모든 기능을 키보드로 사용할 수 없습니다",
		Help:        "마우스로만 가능한 기능을 키보드로도 사용할 수 있도록 구현하세요",
	},
	// 14. 2.4.1
	"bypass": {
		Seq: 14, Code: "2.4.1", Name: "반복 영역 건너뛰기",
		Description: "반복되는 콘텐츠를 건너뛸 수 있는 방법이 없습니다",
		Help:        "페이지 상단에 \"본문으로 건너뛰기\" 링크를 추가하거나 ARIA 랜드마크를 사용하세요",
	},
	"skip-link": {
		Seq: 14, Code: "2.4.1", Name: "반복 영역 건너뛰기",
		Description: "건너뛰기 링크가 제대로 작동하지 않습니다",
		Help:        "건너뛰기 링크는 실제 존재하는 앵커로 연결되어야 합니다",
	},
	// 15. 2.4.2
	"document-title": {
		Seq: 15, Code: "2.4.2", Name: "제목 제공",
		Description: "페이지에 title 요소가 없거나 비어있습니다",
		Help:        "head 태그 내에 의미있는 title 요소를 추가하세요",
	},
	"frame-title": {
		Seq: 15, Code: "2.4.2", Name: "제목 제공(프레임)",
		Description: "iframe에 title 속성이 없습니다",
		Help:        "모든 iframe 요소에 내용을 설명하는 title 속성을 추가하세요",
	},
	"frame-title-unique": {
		Seq: 15, Code: "2.4.2", Name: "제목 제공(중복 프레임)",
		Description: "iframe의 title이 중복됩니다",
		Help:        "각 iframe의 title은 고유해야 합니다",
	},
	// 16. 2.4.3
	"link-name": {
		Seq: 16, Code: "2.4.3", Name: "적절한 링크 텍스트",
		Description: "링크에 접근 가능한 이름이 없습니다",
		Help:        "링크에 텍스트 내용이나 aria-label을 추가하세요",
	},
	"empty-table-header": {
		Seq: 16, Code: "2.4.3", Name: "적절한 링크 텍스트(빈 헤더)",
		Description: "테이블 헤더가 비어있습니다",
		Help:        "th 요소에 텍스트 내용을 추가하세요",
	},
	// 18. 3.1.1
	"html-has-lang": {
		Seq: 18, Code: "3.1.1", Name: "기본 언어 표시",
		Description: "html 요소에 lang 속성이 없습니다",
		Help:        "html 태그에 lang=\"ko\" 속성을 추가하세요",
	},
	"html-lang-valid": {
		Seq: 18, Code: "3.1.1", Name: "기본 언어 표시(유효성)",
		Description: "html 요소의 lang 속성 값이 유효하지 않습니다",
		Help:        "올바른 언어 코드를 사용하세요 (예: ko, en, ja)",
	},
	"html-xml-lang-mismatch": {
		Seq: 18, Code: "3.1.1", Name: "기본 언어 표시(불일치)",
		Description: "lang과 xml:lang 속성이 일치하지 않습니다",
		Help:        "lang과 xml:lang 속성 값을 동일하게 설정하세요",
	},
	// 20. 3.3.1
	"list": {
		Seq: 20, Code: "3.3.1", Name: "콘텐츠의 선형화(리스트)",
		Description: "ul, ol 요소가 li 요소만 포함해야 합니다",
		Help:        "리스트 요소는 직접 자식으로 li만 가져야 합니다",
	},
	"listitem": {
		Seq: 20, Code: "3.3.1", Name: "콘텐츠의 선형화(리스트 아이템)",
		Description: "li 요소가 ul, ol 내부에 없습니다",
		Help:        "li 요소는 ul 또는 ol의 직접 자식이어야 합니다",
	},
	"dlitem": {
		Seq: 20, Code: "3.3.1", Name: "콘텐츠의 선형화(정의 리스트)",
		Description: "dl 요소 구조가 올바르지 않습니다",
		Help:        "dl은 dt와 dd 요소만 직접 자식으로 가져야 합니다",
	},
	"heading-order": {
		Seq: 20, Code: "3.3.1", Name: "콘텐츠의 선형화(헤딩 순서)",
		Description: "제목(heading) 레벨이 순차적이지 않습니다",
		Help:        "제목은 h1부터 시작하여 순차적으로 사용하세요 (h1 → h2 → h3)",
	},
	"empty-heading": {
		Seq: 20, Code: "3.3.1", Name: "콘텐츠의 선형화(빈 헤딩)",
		Description: "제목 요소가 비어있습니다",
		Help:        "제목 요소에 텍스트 내용을 추가하세요",
	},
	// 21. 3.3.2
	"th-has-data-cells": {
		Seq: 21, Code: "3.3.2", Name: "표의 구성(TH 셀)",
		Description: "데이터 테이블의 제목 셀이 올바르게 연결되지 않았습니다",
		Help:        "th 요소가 td 요소와 올바르게 연결되도록 scope 또는 headers 속성을 사용하세요",
	},
	"td-headers-attr": {
		Seq: 21, Code: "3.3.2", Name: "표의 구성(Headers 속성)",
		Description: "headers 속성이 올바르지 않습니다",
		Help:        "td의 headers 속성이 유효한 th의 id를 참조하도록 수정하세요",
	},
	"table-duplicate-name": {
		Seq: 21, Code: "3.3.2", Name: "표의 구성(캡션 중복)",
		Description: "테이블 캡션과 요약이 중복됩니다",
		Help:        "caption과 summary가 동일한 내용을 반복하지 않도록 수정하세요",
	},
	// 22. 3.4.1
	"label": {
		Seq: 22, Code: "3.4.1", Name: "레이블 제공",
		Description: "폼 요소에 레이블이 없습니다",
		Help:        "모든 input, select, textarea 요소에 label 또는 aria-label을 제공하세요",
	},
	"select-name": {
		Seq: 22, Code: "3.4.1", Name: "레이블 제공(Select)",
		Description: "select 요소에 접근 가능한 이름이 없습니다",
		Help:        "select 요소에 label 또는 aria-label을 제공하세요",
	},
	"form-field-multiple-labels": {
		Seq: 22, Code: "3.4.1", Name: "레이블 제공(중복)",
		Description: "폼 필드에 여러 개의 레이블이 연결되어 있습니다",
		Help:        "각 폼 필드는 하나의 명확한 레이블만 가져야 합니다",
	},
	"button-name": {
		Seq: 22, Code: "3.4.1", Name: "레이블 제공(버튼)",
		Description: "버튼에 접근 가능한 이름이 없습니다",
		Help:        "버튼에 텍스트 내용, aria-label, 또는 aria-labelledby를 추가하세요",
	},
	"input-button-name": {
		Seq: 22, Code: "3.4.1", Name: "레이블 제공(인풋)",
		Description: "input 버튼에 접근 가능한 이름이 없습니다",
		Help:        "input[type=\"button/submit/reset\"]에 value 속성을 추가하세요",
	},
	// 24. 4.1.1
	"duplicate-id": {
		Seq: 24, Code: "4.1.1", Name: "마크업 오류 방지(ID 중복)",
		Description: "페이지에 중복된 id 값이 있습니다",
		Help:        "모든 id 속성 값은 페이지 내에서 고유해야 합니다",
	},
	"duplicate-id-active": {
		Seq: 24, Code: "4.1.1", Name: "마크업 오류 방지",
		Description: "상호작용 가능한 요소에 중복된 id가 있습니다",
		Help:        "포커스 가능한 요소의 id는 반드시 고유해야 합니다",
	},
	"duplicate-id-aria": {
		Seq: 24, Code: "4.1.1", Name: "마크업 오류 방지",
		Description: "ARIA에서 참조하는 id가 중복되었습니다",
		Help:        "aria-labelledby, aria-describedby 등에서 참조하는 id는 고유해야 합니다",
	},
	"deprecated-active-element": {
		Seq: 24, Code: "4.1.1", Name: "마크업 오류 방지(Deprecated)",
		Description: "더 이상 사용되지 않는 HTML 요소가 사용되었습니다",
		Help:        "최신 HTML5 표준 요소를 사용하세요",
	},
	// 25. 4.2.1
	"aria-allowed-attr": {
		Seq: 25, Code: "4.2.1", Name: "웹 애플리케이션 접근성 준수",
		Description: "해당 role에 허용되지 않는 ARIA 속성이 사용되었습니다",
		Help:        "각 ARIA role에 맞는 속성만 사용하세요",
	},
	"aria-roles": {
		Seq: 25, Code: "4.2.1", Name: "웹 애플리케이션 접근성 준수",
		Description: "유효하지 않은 ARIA role이 사용되었습니다",
		Help:        "올바른 ARIA role 값을 사용하세요",
	},
	"aria-valid-attr-value": {
		Seq: 25, Code: "4.2.1", Name: "웹 애플리케이션 접근성 준수",
		Description: "ARIA 속성의 값이 유효하지 않습니다",
		Help:        "ARIA 속성에 올바른 형식의 값을 설정하세요",
	},
	"aria-valid-attr": {
		Seq: 25, Code: "4.2.1", Name: "웹 애플리케이션 접근성 준수",
		Description: "유효하지 않은 ARIA 속성이 사용되었습니다",
		Help:        "올바른 ARIA 속성 이름을 사용하세요",
	},
	"aria-hidden-focus": {
		Seq: 25, Code: "4.2.1", Name: "웹 애플리케이션 접근성 준수",
		Description: "aria-hidden 요소 내에 포커스 가능한 요소가 있습니다",
		Help:        "aria-hidden=\"true\"인 요소 내부에는 포커스 가능한 요소를 배치하지 마세요",
	},
	"aria-input-field-name": {
		Seq: 25, Code: "4.2.1", Name: "웹 애플리케이션 접근성 준수",
		Description: "ARIA 입력 필드에 접근 가능한 이름이 없습니다",
		Help:        "ARIA 입력 필드에 aria-label 또는 aria-labelledby를 추가하세요",
	},
	"presentation-role-conflict": {
		Seq: 25, Code: "4.2.1", Name: "웹 애플리케이션 접근성 준수",
		Description: "role=\"presentation\" 또는 role=\"none\"과 충돌하는 속성이 있습니다",
		Help:        "presentation/none role 사용 시 의미론적 속성을 제거하세요",
	},
	// 31. 6.1.1
	"autocomplete-valid": {
		Seq: 31, Code: "6.1.1", Name: "입력 목적 식별",
		Description: "autocomplete 속성 값이 유효하지 않습니다",
		Help:        "올바른 autocomplete 속성 값을 사용하세요 (예: name, email, tel)",
	},
}

// GuidelineFor returns the KWCAG item for an axe rule id
func GuidelineFor(ruleID string) Guideline {
	if g, ok := ruleGuidelines[ruleID]; ok {
		return g
	}
	return otherGuideline
}

// FormatGuideline renders "[code] name", or "기타(WCAG): id" for unmapped rules
func FormatGuideline(ruleID string) string {
	g := GuidelineFor(ruleID)
	if g.Code == OtherCode {
		return fmt.Sprintf("기타(WCAG): %s", ruleID)
	}
	return fmt.Sprintf("[%s] %s", g.Code, g.Name)
}

// KoreanDescription returns the Korean description for ruleID or fallback
func KoreanDescription(ruleID, fallback string) string {
	if g, ok := ruleGuidelines[ruleID]; ok && g.Description != "" {
		return g.Description
	}
	return fallback
}

// KoreanHelp returns the Korean remediation text for ruleID or fallback
func KoreanHelp(ruleID, fallback string) string {
	if g, ok := ruleGuidelines[ruleID]; ok && g.Help != "" {
		return g.Help
	}
	return fallback
}

// RulesFor returns the axe rule ids mapped to a checklist item, sorted
func RulesFor(seq int) []string {
	rules := make([]string, 0)
	for id, g := range ruleGuidelines {
		if g.Seq == seq {
			rules = append(rules, id)
		}
	}
	sort.Strings(rules)
	return rules
}

// ChecklistItem is one of the 33 KWCAG 2.2 check items
type ChecklistItem struct {
	Seq         int    `json:"seq"`
	Code        string `json:"code"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

// Checklist lists every KWCAG 2.2 check item in order
var Checklist = []ChecklistItem{
	{1, "1.1.1", "적절한 대체 텍스트 제공", "텍스트 아닌 콘텐츠에 대체 텍스트 제공"},
	{2, "1.2.1", "자막 제공", "멀티미디어 콘텐츠에 자막, 대본, 수어 제공"},
	{3, "1.3.1", "색에 무관한 콘텐츠 인식", "색상 없이도 콘텐츠 인식 가능"},
	{4, "1.3.2", "명확한 지시사항 제공", "지시사항은 모양, 크기, 위치, 색상 외 다른 정보도 제공"},
	{5, "1.3.3", "텍스트 콘텐츠의 명도 대비", "텍스트와 배경 명도 대비 4.5:1 이상"},
	{6, "1.3.4", "자동 재생 금지", "자동 재생 콘텐츠 3초 내 정지 또는 제어 수단 제공"},
	{7, "1.3.5", "콘텐츠 간의 구분", "이웃한 콘텐츠는 시각적으로 구분"},
	{8, "2.1.1", "키보드 사용 보장", "모든 기능은 키보드로 사용 가능"},
	{9, "2.1.2", "초점 이동", "키보드 초점은 논리적으로 이동, 시각적으로 구분"},
	{10, "2.1.3", "조작 가능", "컨트롤 대각선 길이 6mm 이상, 1px 이상 여백"},
	{11, "2.2.1", "응답시간 조절", "시간제한 콘텐츠는 조절 수단 제공"},
	{12, "2.2.2", "정지 기능 제공", "자동 변경 콘텐츠는 정지 수단 제공"},
	{13, "2.3.1", "깜빡임과 번쩍임 사용 제한", "초당 3~50회 깜빡임 금지"},
	{14, "2.4.1", "반복 영역 건너뛰기", "반복 영역 건너뛸 수 있는 수단 제공"},
	{15, "2.4.2", "제목 제공", "페이지, 프레임, 콘텐츠 블록에 적절한 제목 제공"},
	{16, "2.4.3", "적절한 링크 텍스트", "링크 텍스트는 용도나 목적 이해 가능"},
	{17, "2.4.4", "고정된 참조점 제공", "전자출판문서는 참조점 제공"},
	{18, "3.1.1", "기본 언어 표시", "주로 사용하는 언어를 명시"},
	{19, "3.2.1", "사용자 요구에 따른 실행", "사용자가 의도하지 않은 기능 자동 실행 금지"},
	{20, "3.3.1", "콘텐츠의 선형화", "콘텐츠는 논리적 순서로 제공"},
	{21, "3.3.2", "표의 구성", "표는 이해하기 쉽게 구성"},
	{22, "3.4.1", "레이블 제공", "입력 서식에 레이블 제공"},
	{23, "3.4.2", "오류 정정", "입력 오류 시 정정 방법 안내"},
	{24, "4.1.1", "마크업 오류 방지", "마크업 언어 요소는 규격 준수"},
	{25, "4.2.1", "웹 애플리케이션 접근성 준수", "웹 애플리케이션은 접근성 준수"},
	{26, "5.1.1", "대체 수단 제공", "플랫폼 접근성 기능과 호환"},
	{27, "5.2.1", "이용 가능한 포인터", "모든 포인터 입력 사용 가능"},
	{28, "5.2.2", "포인터 취소", "단일 포인터 입력 취소 가능"},
	{29, "5.3.1", "레이블과 명칭 일치", "시각적 레이블과 접근성 명칭 일치"},
	{30, "5.4.1", "동작 기반 작동", "기기 흔들기 등 동작으로 실행되는 기능 대안 제공"},
	{31, "6.1.1", "입력 목적 식별", "입력 서식 목적 자동 완성으로 식별 가능"},
	{32, "6.2.1", "상태 메시지 제공", "상태 변화 정보를 보조기술이 인식 가능"},
	{33, "6.3.1", "접근 가능한 인증", "인증 과정에서 인지 기능 테스트 대안 제공"},
}
