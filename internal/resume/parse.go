package resume

import "strings"

// Parse runs the full text pipeline: tokenize, then normalize flat sections
// and structure the work history.
func Parse(text string) *ContentModel {
	return Build(Tokenize(text))
}

// Build assembles a ContentModel from tokenizer output.
func Build(t *Tokens) *ContentModel {
	return &ContentModel{
		Header:             strings.TrimSpace(StripMarkdown(t.Header)),
		TechnicalSkills:    NormalizeTechnicalSkills(t.Lines(SectionTechnical)),
		IndustryExperience: NormalizeList(t.Lines(SectionIndustry)),
		FunctionalSkills:   NormalizeList(t.Lines(SectionFunctional)),
		Education:          NormalizeEducation(t.Lines(SectionEducation)),
		Certifications:     NormalizeList(t.Lines(SectionCertifications)),
		Summary:            NormalizeSummary(t.Lines(SectionSummary)),
		Projects:           StructureProjects(t.Lines(SectionProjects)),
	}
}

// ParseForm formats a form submission as marker text and parses it.
func ParseForm(f FormSubmission) (string, *ContentModel) {
	text := FormatForm(f)
	return text, Parse(text)
}
