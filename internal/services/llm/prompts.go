package llm

import (
	"fmt"

	"github.com/Shimizu-Technology/cv-formatter-api/internal/render"
	"github.com/Shimizu-Technology/cv-formatter-api/internal/resume"
)

const convertSystemPrompt = `You are an expert CV writer and formatter with exceptional attention to detail. Convert CVs into the requested format while:

1. Preserving ALL information: no experience, skill, qualification or achievement may be dropped
2. Keeping dates, job titles, company names, qualifications and contact details exactly as written
3. Following the requested structure and section markers precisely
4. Using professional language and correct grammar

When a structure with section markers is requested:
- Use the markers exactly: [HEADER], [LEFT_COLUMN_START], [LEFT_COLUMN_END], [RIGHT_COLUMN_START], [RIGHT_COLUMN_END], [PROJECTS_EXPERIENCE]
- Section headers must match exactly (case-sensitive): "Technical Skills:", "Functional Skills:", "Industry Experience:", "Summary:", "Education/Qualifications/Certifications:"
- Use "- " (dash and space) for every bullet point
- Write dates as "MM/YYYY – MM/YYYY" or "MM/YYYY – Present"
- Add no markdown or decoration beyond what is specified`

const datamaticsPrompt = `Convert this CV into the two-column professional template. Follow the structure exactly.

HEADER
- One line: "Full Name | Job Title", for example "FAROOQ RAZI | DevOps Engineer".

LEFT COLUMN ([LEFT_COLUMN_START] to [LEFT_COLUMN_END])
1. Technical Skills: every tool, technology and platform the CV actually mentions, grouped into categories, one category per line as "Category Name: skill1, skill2, skill3". Never list skills without a category. Never emit a category with no skills or with placeholders such as "None mentioned". Aim for 5-8 categories.
2. Functional Skills: soft, management and leadership competencies shown in the CV, one per bullet. Aim for 15-20.
3. Industry Experience: industries and sectors worked in, one per bullet, grouping related ones with " & ". Aim for 10-15.

RIGHT COLUMN ([RIGHT_COLUMN_START] to [RIGHT_COLUMN_END])
1. Summary: one long first-person paragraph starting with "I am", 150-250 words, covering years of experience, specialisation, technical depth, industries served, achievements with metrics, methodologies and leadership.
2. Education/Qualifications/Certifications: every certification and training first, one per bullet, then ONLY the most recent or highest degree LAST, on ONE line: "Degree Name | Institution Name, Location | Year".

FULL WIDTH ([PROJECTS_EXPERIENCE])
For each position, in reverse chronological order:
- A title line, either "Job Title / Company Name | MM/YYYY – MM/YYYY | Location" or "Job Title, Company Name, Location | MM/YYYY – MM/YYYY". Include a location only when the CV states one.
- 8-15 detailed responsibilities, each on its own "- " bullet, each 4-8 sentences explaining what was done, how, why and the measurable result.
- With many responsibilities, group them under short category headers ending in a colon, such as "ETL Development:" or "Project Management & Delivery:".
- Optionally a final "Technologies: Tech1, Tech2" line listing only tools and platforms, never responsibilities.

EXACT OUTPUT STRUCTURE:
[HEADER]
Full Name | Job Title

[LEFT_COLUMN_START]
Technical Skills:
Category Name 1: skill1, skill2, skill3
Category Name 2: skill4, skill5

Functional Skills:
- Skill 1
- Skill 2

Industry Experience:
- Industry 1
- Industry 2 & Industry 3
[LEFT_COLUMN_END]

[RIGHT_COLUMN_START]
Summary:
I am ...

Education/Qualifications/Certifications:
- Certification 1
- Certification 2
- Degree Name | Institution Name | Year
[RIGHT_COLUMN_END]

[PROJECTS_EXPERIENCE]
Projects Experience

Job Title / Company Name | MM/YYYY – MM/YYYY | Location
- Responsibility 1
- Responsibility 2
Technologies: Tech1, Tech2`

// formatPrompts holds the per-format conversion instructions.
var formatPrompts = map[string]string{
	render.FormatDatamatics: datamaticsPrompt,
	render.FormatModern: `Convert this CV into a modern format with:
- A clean, professional layout
- Achievements emphasised with metrics
- A prominent skills section
- Action verbs and quantifiable results
- Section order: Contact Info, Professional Summary, Skills, Experience, Education`,
	render.FormatTraditional: `Convert this CV into a traditional format with:
- Chronological ordering
- Conservative styling
- Section order: Contact Info, Objective/Summary, Experience, Education, Skills
- Formal professional language suitable for corporate and government roles`,
	render.FormatAcademic: `Convert this CV into an academic format with:
- Emphasis on publications, research and academic achievements
- A detailed education section
- Research experience highlighted
- Publications, presentations and grants sections
- Professional associations and certifications`,
	render.FormatATS: `Convert this CV into an ATS-friendly format with:
- Simple formatting with no tables or graphics
- Standard section headers (Experience, Education, Skills)
- Keywords preserved and optimised
- Chronological ordering
- No special characters`,
	render.FormatCreative: `Convert this CV into a creative format with:
- Bold, distinctive section names
- A readable but unusual structure
- Emphasis on portfolio and creative projects
- A tone suited to design, marketing and creative industries`,
}

// convertPrompt builds the user prompt for a conversion. Unknown formats use
// the modern instructions.
func convertPrompt(format, cvText, extra string) string {
	base, ok := formatPrompts[format]
	if !ok {
		base = formatPrompts[render.FormatModern]
	}
	if extra != "" {
		base += "\n\nAdditional Instructions: " + extra
	}
	return fmt.Sprintf("%s\n\nOriginal CV Content:\n%s\n\nConvert this CV according to the format requirements above. Keep all key information while reformatting it.", base, cvText)
}

// sectionInstructions are the default improve-text instructions per section.
var sectionInstructions = map[resume.Section]string{
	resume.SectionTechnical:      "Extract and list ALL technical skills, tools, technologies and platforms mentioned. ALWAYS group them into categories, one per line as 'Category Name: skill1, skill2'. Only create categories that have actual skills; never output empty categories or 'None mentioned'. Aim for 5-8 categories.",
	resume.SectionIndustry:       "Extract and list ALL industries and sectors worked in or mentioned. Return one industry per line with no markdown, grouping related industries with ' & '. Aim for 10-15.",
	resume.SectionFunctional:     "Extract and list ALL soft, management, leadership and interpersonal skills mentioned or demonstrated. Return one skill per line with no categories and no markdown. Aim for 15-20.",
	resume.SectionCertifications: "Extract and list all certifications, licenses and training programs. Return one certification per line with no markdown.",
	resume.SectionEducation:      "Extract ONLY the most recent or highest educational qualification. Format it as 'Degree Name | Institution Name | Year', or 'Degree Name | Institution Name' without a year. Return only ONE entry.",
	resume.SectionSummary:        "Write ONE comprehensive professional paragraph in FIRST PERSON starting with 'I am', covering years of experience, specialisation, technical expertise, industries served, key achievements and the value delivered.",
}

// improveInstruction returns the default instruction for a section.
func improveInstruction(section string) string {
	if instruction, ok := sectionInstructions[resume.Section(section)]; ok {
		return instruction
	}
	return fmt.Sprintf("Improve and enhance the following %s content. Make it more professional, concise, and impactful while preserving all key information.", section)
}

// improveFormats adds output-shape rules for sections with a strict layout.
var improveFormats = map[resume.Section]string{
	resume.SectionTechnical: `OUTPUT FORMAT:
- One category per line: "Category Name: skill1, skill2, skill3"
- No markdown, bullets, descriptions or explanations
- Only categories that contain at least one skill from the input`,
	resume.SectionIndustry: `OUTPUT FORMAT:
- One industry per line, or 2-3 related industries joined with " & "
- No markdown or bullets`,
	resume.SectionSummary: `OUTPUT FORMAT:
- ONE paragraph in first person starting with "I am", 150-250 words
- No markdown, bullets or headings`,
}

func improveSystemPrompt(section string) string {
	prompt := fmt.Sprintf(`You are an expert CV writer and editor. Improve CV content for the %s section while:
1. Preserving all important information
2. Making the text more professional and impactful
3. Improving clarity and concision
4. Using industry-standard terminology
5. Keeping every fact, date and name accurate

Return ONLY plain text: no markdown, no bullets, no headings, no explanations.`, section)
	if rules, ok := improveFormats[resume.Section(section)]; ok {
		prompt += "\n\n" + rules
	}
	return prompt
}

func improveUserPrompt(instruction, text string) string {
	return fmt.Sprintf("%s\n\nOriginal content:\n%s\n\nReturn ONLY the improved content in the specified format, as clean text that can be pasted directly into a form field.", instruction, text)
}

// extractionPrompt asks for labelled sections that SplitSections can read.
const extractionPrompt = `Extract the following sections from this CV.

1. Technical Skills: every tool, technology and platform actually mentioned, grouped as "Category: skill1, skill2", one category per line. Keep categories the CV already uses; otherwise group conservatively.
2. Summary: one first-person paragraph starting with "I am".
3. Industry Experience: industries and sectors worked in, one per line.
4. Functional Skills: soft, management and leadership skills, one per line.
5. Certifications: every certification, license and training, one per line.
6. Education: ONLY the most recent or highest qualification, as "Degree Name | Institution Name | Year".
7. Projects Experience: every position as a title line "Job Title / Company Name | MM/YYYY – MM/YYYY | Location" (location only when stated), then one "- " bullet per responsibility (2-4 sentences each), then an optional "Technologies: Tech1, Tech2" line.

Return only the content of each section, not its heading. Leave a section empty when the CV has nothing for it.

Format your response as:
TECHNICAL_SKILLS:
[content]

SUMMARY:
[content]

INDUSTRY_EXPERIENCE:
[content]

FUNCTIONAL_SKILLS:
[content]

CERTIFICATIONS:
[content]

EDUCATION:
[content]

PROJECTS_EXPERIENCE:
[content]`

const extractionSection = "extraction"
