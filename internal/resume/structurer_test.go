package resume

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStructureProjects_CombinedLine(t *testing.T) {
	projects := StructureProjects([]string{"DevOps Engineer / Acme Corp | 01/2020 – Present | Remote"})

	require.Len(t, projects, 1)
	p := projects[0]
	assert.Equal(t, "DevOps Engineer / Acme Corp", p.Title)
	assert.Equal(t, "01/2020 – Present", p.Dates)
	assert.Equal(t, "Remote", p.Location)
	assert.Empty(t, p.Responsibilities)
	assert.Empty(t, p.Technologies)
}

func TestStructureProjects_CombinedLineVariants(t *testing.T) {
	tests := []struct {
		name     string
		line     string
		title    string
		dates    string
		location string
	}{
		{
			name:  "comma separated title with dates label",
			line:  "Data Engineer, Initech, Pune | Dates: 03/2018 - 06/2020",
			title: "Data Engineer, Initech, Pune",
			dates: "03/2018 - 06/2020",
		},
		{
			name:  "slash without pipe",
			line:  "Cloud Architect / Initech 03/2018 - 06/2020",
			title: "Cloud Architect / Initech",
			dates: "03/2018 - 06/2020",
		},
		{
			name:  "bare years with em dash",
			line:  "Consultant | 2015 — 2017",
			title: "Consultant",
			dates: "2015 — 2017",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			projects := StructureProjects([]string{tt.line})
			require.Len(t, projects, 1)
			assert.Equal(t, tt.title, projects[0].Title)
			assert.Equal(t, tt.dates, projects[0].Dates)
			assert.Equal(t, tt.location, projects[0].Location)
		})
	}
}

func TestStructureProjects_CategoryInterleaving(t *testing.T) {
	projects := StructureProjects([]string{
		"Data Engineer / Acme | 2019 - 2021",
		"ETL Development:",
		"- built X jobs",
		"- tuned Y jobs",
		"Technologies: A, B",
	})

	require.Len(t, projects, 1)
	assert.Equal(t, []string{"ETL Development:", "built X jobs", "tuned Y jobs"}, projects[0].Responsibilities)
	assert.Equal(t, []string{"A", "B"}, projects[0].Technologies)
}

func TestStructureProjects_SeparateDatesLine(t *testing.T) {
	projects := StructureProjects([]string{
		"Data Engineer, Acme",
		"Dates: 01/2020 - Present | Pune",
		"- Built streaming pipelines",
	})

	require.Len(t, projects, 1)
	p := projects[0]
	assert.Equal(t, "Data Engineer, Acme", p.Title)
	assert.Equal(t, "01/2020 - Present", p.Dates)
	assert.Equal(t, "Pune", p.Location)
	assert.Equal(t, []string{"Built streaming pipelines"}, p.Responsibilities)
}

func TestStructureProjects_TechnologiesOverwrite(t *testing.T) {
	projects := StructureProjects([]string{
		"Platform Lead / Globex | 2016 - 2019",
		"Technologies: Java",
		"Technologies: Go; Postgres and Redis",
	})

	require.Len(t, projects, 1)
	assert.Equal(t, []string{"Go", "Postgres", "Redis"}, projects[0].Technologies)
}

func TestStructureProjects_EmptyProjectSuppression(t *testing.T) {
	t.Run("title alone is emitted", func(t *testing.T) {
		projects := StructureProjects([]string{"Lead Engineer / Acme | 2019 - 2021"})
		require.Len(t, projects, 1)
		assert.Empty(t, projects[0].Responsibilities)
	})

	t.Run("technologies alone are emitted", func(t *testing.T) {
		projects := StructureProjects([]string{"Technologies: Go"})
		require.Len(t, projects, 1)
		assert.Empty(t, projects[0].Title)
	})

	t.Run("dates alone are dropped", func(t *testing.T) {
		assert.Empty(t, StructureProjects([]string{"Dates: 01/2020 - 02/2021"}))
	})

	t.Run("nothing but noise", func(t *testing.T) {
		assert.Empty(t, StructureProjects([]string{"", "- ab", "Summary"}))
	})
}

func TestStructureProjects_ShoutedParagraph(t *testing.T) {
	paragraph := "LED THE MIGRATION OF LEGACY BILLING SYSTEMS TO THE CLOUD PLATFORM. " +
		"DESIGNED AUTOMATED TEST SUITES FOR EVERY RELEASE TRAIN. " +
		"COORDINATED WITH STAKEHOLDERS ACROSS FINANCE AND OPERATIONS TEAMS. OK. " +
		"REDUCED DEFECT LEAKAGE BY FORTY PERCENT OVER TWO YEARS."
	require.Greater(t, len(paragraph), 200)

	projects := StructureProjects([]string{"QA Lead / Acme | 2019 - 2021", paragraph})

	require.Len(t, projects, 1)
	resp := projects[0].Responsibilities
	assert.Equal(t, []string{
		"LED THE MIGRATION OF LEGACY BILLING SYSTEMS TO THE CLOUD PLATFORM.",
		"DESIGNED AUTOMATED TEST SUITES FOR EVERY RELEASE TRAIN.",
		"COORDINATED WITH STAKEHOLDERS ACROSS FINANCE AND OPERATIONS TEAMS.",
		"REDUCED DEFECT LEAKAGE BY FORTY PERCENT OVER TWO YEARS.",
	}, resp)
	for _, r := range resp {
		assert.GreaterOrEqual(t, len(r), 15)
	}
}

func TestStructureProjects_TitleVersusContinuation(t *testing.T) {
	projects := StructureProjects([]string{
		"Senior Data Engineer",
		"Worked closely with the analytics group on reporting.",
		"Platform Migration",
		"- Moved workloads to Kubernetes",
	})

	require.Len(t, projects, 2)
	assert.Equal(t, "Senior Data Engineer", projects[0].Title)
	assert.Equal(t, []string{"Worked closely with the analytics group on reporting."}, projects[0].Responsibilities)
	assert.Equal(t, "Platform Migration", projects[1].Title)
	assert.Equal(t, []string{"Moved workloads to Kubernetes"}, projects[1].Responsibilities)
}

func TestStructureProjects_LongContinuationSplitsSentences(t *testing.T) {
	long := "Owned the reporting stack for the finance group and rebuilt it from scratch. " +
		"Replaced nightly batch jobs with incremental loads that finish in minutes. " +
		"Trained two junior colleagues."
	require.Greater(t, len(long), 150)

	projects := StructureProjects([]string{"Reporting Revamp / Acme | 2020 - 2021", long})

	require.Len(t, projects, 1)
	assert.Equal(t, []string{
		"Owned the reporting stack for the finance group and rebuilt it from scratch.",
		"Replaced nightly batch jobs with incremental loads that finish in minutes.",
		"Trained two junior colleagues.",
	}, projects[0].Responsibilities)
}

func TestStructureProjects_BulletMentioningSectionIsKept(t *testing.T) {
	projects := StructureProjects([]string{
		"Architect / Acme | 2019 - 2021",
		"- Designed an education portal for 40 schools",
		"- Summary",
	})

	require.Len(t, projects, 1)
	assert.Equal(t, []string{"Designed an education portal for 40 schools"}, projects[0].Responsibilities)
}

func TestStructureProjects_ShortBulletsDropped(t *testing.T) {
	projects := StructureProjects([]string{
		"Tester / Acme | 2019 - 2021",
		"- Jira.",
		"- Jira",
		"- Jira 8",
	})

	require.Len(t, projects, 1)
	assert.Equal(t, []string{"Jira 8"}, projects[0].Responsibilities)
}

func TestIsCategoryHeader(t *testing.T) {
	tests := []struct {
		line string
		want bool
	}{
		{line: "ETL Development:", want: true},
		{line: "Project Management:", want: true},
		{line: "Technologies:", want: false},
		{line: "Dates:", want: false},
		{line: "- ETL Development:", want: false},
		{line: "Note: this has two: colons:", want: false},
		{line: "Education:", want: false},
		{line: "Built pipelines", want: false},
		{line: strings.Repeat("x", 100) + ":", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			assert.Equal(t, tt.want, IsCategoryHeader(tt.line))
		})
	}
}

func TestSplitSentences(t *testing.T) {
	got := splitSentences("First one. Second one! third stays. Fourth? Yes.")
	assert.Equal(t, []string{"First one.", "Second one! third stays.", "Fourth?", "Yes."}, got)
}
