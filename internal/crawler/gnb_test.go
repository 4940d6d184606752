package crawler

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/BenjaminSRussell/siteaudit/internal/renderer"
	"github.com/BenjaminSRussell/siteaudit/internal/types"
)

func TestGNBCandidates(t *testing.T) {
	tests := []struct {
		selector string
		want     []string
	}{
		{"", DefaultGNBSelectors},
		{"gnb", []string{"gnb", ".gnb"}},
		{".menu", []string{".menu"}},
		{"#top", []string{"#top"}},
		{" topnav ", []string{"topnav", ".topnav"}},
	}

	for _, tt := range tests {
		if got := GNBCandidates(tt.selector); !reflect.DeepEqual(got, tt.want) {
			t.Errorf("GNBCandidates(%q) = %v, want %v", tt.selector, got, tt.want)
		}
	}
}

func newTestMapper(t *testing.T) *GNBMapper {
	t.Helper()
	filter, err := NewFilter("https://example.com/", nil)
	if err != nil {
		t.Fatalf("NewFilter() error = %v", err)
	}
	return NewGNBMapper("https://example.com/", filter, nil)
}

func TestGNBBuildDefaultSelectors(t *testing.T) {
	page := newFakePage(nil)
	page.locateErr[".gnb a"] = errors.New("detached node")
	page.elements["#gnb a"] = []renderer.Element{
		anchor(" 회사소개 ", "/about/"),
		anchor("제품", "https://example.com/products"),
	}
	page.elements[".menu a"] = []renderer.Element{anchor("Never", "/never")}

	gnb := newTestMapper(t).Build(context.Background(), page, "")

	want := types.GnbMap{"/about": "회사소개", "/products": "제품"}
	if !reflect.DeepEqual(gnb, want) {
		t.Errorf("Build() = %v, want %v", gnb, want)
	}

	wantLocated := []string{"nav a", ".gnb a", "#gnb a"}
	if !reflect.DeepEqual(page.located, wantLocated) {
		t.Errorf("Located %v, want %v", page.located, wantLocated)
	}
}

func TestGNBBuildSkipsUnusableEntries(t *testing.T) {
	page := newFakePage(nil)
	page.elements["nav a"] = []renderer.Element{
		anchor("", "/empty-text"),
		anchor("Home", "/"),
		anchor("Other", "https://other.com/x"),
		fakeElement{text: "No href"},
		anchor("First", "/dup"),
		anchor("Second", "/dup/"),
	}

	gnb := newTestMapper(t).Build(context.Background(), page, "")

	want := types.GnbMap{"/dup": "First"}
	if !reflect.DeepEqual(gnb, want) {
		t.Errorf("Build() = %v, want %v", gnb, want)
	}
	for key := range gnb {
		if len(key) > 1 && key[len(key)-1] == '/' {
			t.Errorf("Key %q has a trailing slash", key)
		}
	}
}

func TestGNBBuildMovesOnWhenCandidateHasNoMapping(t *testing.T) {
	page := newFakePage(nil)
	page.elements["nav a"] = []renderer.Element{anchor("External", "https://other.com/")}
	page.elements[".gnb a"] = []renderer.Element{anchor("Shop", "/shop")}

	gnb := newTestMapper(t).Build(context.Background(), page, "")

	if !reflect.DeepEqual(gnb, types.GnbMap{"/shop": "Shop"}) {
		t.Errorf("Build() = %v", gnb)
	}
}

func TestGNBBuildExplicitSelectorFallsBackToElement(t *testing.T) {
	page := newFakePage(nil)
	page.elements["a.menu-link"] = []renderer.Element{anchor("Support", "/support/faq/")}

	gnb := newTestMapper(t).Build(context.Background(), page, "a.menu-link")

	if !reflect.DeepEqual(gnb, types.GnbMap{"/support/faq": "Support"}) {
		t.Errorf("Build() = %v", gnb)
	}

	wantLocated := []string{"a.menu-link a", "a.menu-link"}
	if !reflect.DeepEqual(page.located, wantLocated) {
		t.Errorf("Located %v, want %v", page.located, wantLocated)
	}
}

func TestGNBBuildNormalizesLabels(t *testing.T) {
	page := newFakePage(nil)
	// decomposed Hangul jamo for 한
	page.elements["nav a"] = []renderer.Element{anchor("\u1112\u1161\u11ab", "/han")}

	gnb := newTestMapper(t).Build(context.Background(), page, "")

	if gnb["/han"] != "\ud55c" {
		t.Errorf("Expected NFC label, got %q", gnb["/han"])
	}
}

func TestGNBBuildNothingFound(t *testing.T) {
	page := newFakePage(nil)

	gnb, err := BuildGnbMap(context.Background(), page, "https://example.com/", "", nil)
	if err != nil {
		t.Fatalf("BuildGnbMap() error = %v", err)
	}
	if gnb == nil || len(gnb) != 0 {
		t.Errorf("Expected empty map, got %v", gnb)
	}
	if len(page.located) != len(DefaultGNBSelectors) {
		t.Errorf("Expected every default selector tried, got %v", page.located)
	}
}

func TestDepths(t *testing.T) {
	gnb := types.GnbMap{
		"/products":                "제품",
		"/products/widget":         "위젯",
		"/b":                       "Not cumulative",
		"/%EC%86%8C%EA%B0%9C":      "소개 메뉴",
		"/company/history/archive": "연혁 자료",
	}

	tests := []struct {
		url  string
		want [4]string
	}{
		{"https://example.com/", [4]string{"", "", "", ""}},
		{"https://example.com", [4]string{"", "", "", ""}},
		{"https://example.com/products/widget/manual", [4]string{"제품", "위젯", "manual", ""}},
		{"https://example.com/a/b/c/d/e", [4]string{"a", "b", "c", "d"}},
		{"https://example.com/a/b", [4]string{"a", "b", "", ""}},
		{"https://example.com/about/", [4]string{"about", "", "", ""}},
		{"https://example.com/%EC%A0%9C%ED%92%88", [4]string{"%EC%A0%9C%ED%92%88", "", "", ""}},
		{"https://example.com/%EC%86%8C%EA%B0%9C", [4]string{"소개 메뉴", "", "", ""}},
		{"https://example.com/docs/a%20b", [4]string{"docs", "a%20b", "", ""}},
		{"https://example.com/company/history/archive?page=2", [4]string{"company", "history", "연혁 자료", ""}},
		{"://bad", [4]string{"", "", "", ""}},
	}

	for _, tt := range tests {
		if got := Depths(tt.url, gnb); got != tt.want {
			t.Errorf("Depths(%q) = %v, want %v", tt.url, got, tt.want)
		}
	}
}

func TestDepthsIdempotent(t *testing.T) {
	gnb := types.GnbMap{"/products": "제품"}
	url := "https://example.com/products/widget"

	first := Depths(url, gnb)
	second := Depths(url, gnb)
	if first != second {
		t.Errorf("Depths not idempotent: %v vs %v", first, second)
	}
	if len(first) != 4 {
		t.Errorf("Expected 4 slots, got %d", len(first))
	}
}

func TestBuildCrawlResult(t *testing.T) {
	r := BuildCrawlResult("https://example.com/products", "Products", types.GnbMap{"/products": "제품"})
	if r.URL != "https://example.com/products" || r.Title != "Products" || r.Depths[0] != "제품" {
		t.Errorf("Unexpected result %+v", r)
	}
}
