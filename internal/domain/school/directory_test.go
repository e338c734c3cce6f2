package school

import "testing"

func testEntries() []Info {
	return []Info{
		{SchoolName: "VSK Sunshine", Campus: "Cổ Nhuế", AMName: "Vivian", AMEmail: "vivian.pham@grapeseed.com"},
		{SchoolName: "VSK Sunshine", Campus: "Mỹ Đình", AMName: "Vivian", AMEmail: "vivian.pham@grapeseed.com"},
		{SchoolName: "Sakura Montessori", Campus: "Cầu Giấy", AMName: "Trang Nguyen", AMEmail: "trang.nguyen@grapeseed.com"},
	}
}

func TestFind_ExactMatch(t *testing.T) {
	dir := NewDirectory(testEntries())
	info, ok := dir.Find("VSK Sunshine", "Cổ Nhuế")
	if !ok {
		t.Fatal("expected a match")
	}
	if info.AMName != "Vivian" {
		t.Errorf("amName = %q, want Vivian", info.AMName)
	}
}

func TestFind_NoFuzzyMatching(t *testing.T) {
	dir := NewDirectory(testEntries())
	cases := []struct {
		name           string
		school, campus string
	}{
		{"case differs", "vsk sunshine", "Cổ Nhuế"},
		{"trailing space", "VSK Sunshine ", "Cổ Nhuế"},
		{"stripped diacritics", "VSK Sunshine", "Co Nhue"},
		{"unknown school", "VSK Moonlight", "Cổ Nhuế"},
		{"campus from another school", "VSK Sunshine", "Cầu Giấy"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, ok := dir.Find(tc.school, tc.campus); ok {
				t.Errorf("Find(%q, %q) matched, want miss", tc.school, tc.campus)
			}
		})
	}
}

func TestFind_FirstMatchWins(t *testing.T) {
	entries := append(testEntries(), Info{
		SchoolName: "VSK Sunshine", Campus: "Cổ Nhuế", AMName: "Someone Else", AMEmail: "other@grapeseed.com",
	})
	dir := NewDirectory(entries)
	info, ok := dir.Find("VSK Sunshine", "Cổ Nhuế")
	if !ok {
		t.Fatal("expected a match")
	}
	if info.AMName != "Vivian" {
		t.Errorf("amName = %q, want the first entry's Vivian", info.AMName)
	}
}

func TestAMKey(t *testing.T) {
	am := AM{Name: "Vivian", Email: "vivian.pham@grapeseed.com"}
	if got := am.Key(); got != "vivian.pham@grapeseed.com|Vivian" {
		t.Errorf("Key = %q", got)
	}
}

func TestMasterList_UniquePairs(t *testing.T) {
	seen := make(map[[2]string]bool)
	for _, e := range MasterList {
		k := [2]string{e.SchoolName, e.Campus}
		if seen[k] {
			t.Errorf("duplicate master list entry for %v", k)
		}
		seen[k] = true
	}
}
