// Package locale provides per-language keyword tables used by line
// classification and noise filtering. Tables are plain data so callers can
// swap in their own vocabulary without touching control flow.
package locale

// Table holds the keyword vocabulary for one language. All entries are
// matched case-insensitively as substrings unless noted otherwise.
type Table struct {
	Name string

	// Months are month tokens recognized inside date-range lines.
	Months []string
	// PresentWords mark an open-ended date range ("Jan 2020 - Present").
	PresentWords []string
	// TitleKeywords mark a line as a likely job title.
	TitleKeywords []string
	// CompanySuffixes mark a line as a likely organization name.
	CompanySuffixes []string
	// EmploymentTypes mark metadata lines ("Full-time", "Contract").
	EmploymentTypes []string
	// NoisePhrases identify UI chrome lines dropped during normalization.
	NoisePhrases []string
	// SchoolKeywords mark a line as a likely school or institution.
	SchoolKeywords []string
	// DegreeKeywords mark a line as a likely degree or program.
	DegreeKeywords []string
	// SectionHeadings are standalone headings ("Experience", "Skills")
	// treated as metadata, plus used to locate sections in raw text.
	SectionHeadings []string
}

// English returns the keyword table for English-language profile pages.
func English() *Table {
	return &Table{
		Name: "en",
		Months: []string{
			"jan", "feb", "mar", "apr", "may", "jun",
			"jul", "aug", "sep", "oct", "nov", "dec",
			"january", "february", "march", "april", "june",
			"july", "august", "september", "october", "november", "december",
		},
		PresentWords: []string{"present", "current"},
		TitleKeywords: []string{
			"engineer", "developer", "manager", "analyst", "consultant",
			"director", "designer", "architect", "scientist", "teacher",
			"instructor", "coordinator", "specialist", "administrator",
			"assistant", "associate", "lead", "intern", "founder",
			"president", "officer", "representative", "recruiter",
		},
		CompanySuffixes: []string{
			"inc", "inc.", "llc", "ltd", "ltd.", "corp", "corp.",
			"corporation", "company", "co.", "group", "holdings",
			"technologies", "solutions", "systems", "studio", "agency",
			"bank", "hotel", "hospital", "university", "partners",
		},
		EmploymentTypes: []string{
			"full-time", "part-time", "contract", "internship",
			"freelance", "self-employed", "remote", "hybrid", "on-site",
		},
		NoisePhrases: []string{
			"show more", "show less", "see more", "see less",
			"show all", "...see more",
			"followers", "connections", "mutual connection",
			"follow", "message", "connect", "more actions",
			"endorsed", "endorsements", "people also viewed",
			"promoted", "visit my website", "contact info",
		},
		SchoolKeywords: []string{
			"university", "college", "institute", "school", "academy",
		},
		DegreeKeywords: []string{
			"bachelor", "master", "doctor", "phd", "ph.d", "mba",
			"b.s", "b.a", "m.s", "m.a", "bs ", "ba ", "ms ", "ma ",
			"associate degree", "diploma", "certificate",
		},
		SectionHeadings: []string{
			"experience", "education", "skills", "about", "summary",
			"certifications", "licenses & certifications", "projects",
			"languages", "volunteering", "interests", "activity",
		},
	}
}

// Japanese returns the keyword table for Japanese-language profile pages.
// It parallels the English table entry-for-entry rather than carrying a
// language-specific code path.
func Japanese() *Table {
	return &Table{
		Name:         "ja",
		Months:       []string{"1月", "2月", "3月", "4月", "5月", "6月", "7月", "8月", "9月", "10月", "11月", "12月"},
		PresentWords: []string{"現在", "在職中"},
		TitleKeywords: []string{
			"エンジニア", "開発者", "マネージャー", "部長", "課長",
			"ディレクター", "デザイナー", "アーキテクト", "コンサルタント",
			"講師", "教師", "アナリスト", "スペシャリスト", "担当",
		},
		CompanySuffixes: []string{
			"株式会社", "有限会社", "合同会社", "ホールディングス",
			"グループ", "ホテル", "銀行", "病院",
		},
		EmploymentTypes: []string{
			"正社員", "契約社員", "派遣", "アルバイト", "インターン",
			"リモート", "在宅勤務", "業務委託",
		},
		NoisePhrases: []string{
			"もっと見る", "さらに表示", "フォロー", "メッセージ",
			"つながり", "フォロワー", "他のユーザー",
		},
		SchoolKeywords: []string{"大学", "大学院", "専門学校", "高等学校", "学院"},
		DegreeKeywords: []string{"学士", "修士", "博士", "学位"},
		SectionHeadings: []string{
			"職歴", "学歴", "スキル", "概要", "資格", "プロジェクト", "言語",
		},
	}
}

// Merged combines tables so mixed-language pages classify with the union of
// their vocabularies. The first table's name is kept.
func Merged(tables ...*Table) *Table {
	if len(tables) == 0 {
		return English()
	}
	out := &Table{Name: tables[0].Name}
	for _, t := range tables {
		out.Months = append(out.Months, t.Months...)
		out.PresentWords = append(out.PresentWords, t.PresentWords...)
		out.TitleKeywords = append(out.TitleKeywords, t.TitleKeywords...)
		out.CompanySuffixes = append(out.CompanySuffixes, t.CompanySuffixes...)
		out.EmploymentTypes = append(out.EmploymentTypes, t.EmploymentTypes...)
		out.NoisePhrases = append(out.NoisePhrases, t.NoisePhrases...)
		out.SchoolKeywords = append(out.SchoolKeywords, t.SchoolKeywords...)
		out.DegreeKeywords = append(out.DegreeKeywords, t.DegreeKeywords...)
		out.SectionHeadings = append(out.SectionHeadings, t.SectionHeadings...)
	}
	return out
}

// ByName resolves a locale name to its table. Unknown names fall back to the
// merged English+Japanese vocabulary.
func ByName(name string) *Table {
	switch name {
	case "en":
		return English()
	case "ja":
		return Japanese()
	default:
		return Default()
	}
}

// Default returns the table used when no locale is specified: the merged
// English and Japanese vocabularies, matching the capture source which
// renders both side by side.
func Default() *Table {
	t := Merged(English(), Japanese())
	t.Name = "en+ja"
	return t
}
