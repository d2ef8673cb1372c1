package ai

import (
	"strings"
	"text/template"

	"google.golang.org/genai"
)

var (
	eventIdeasTmpl = template.Must(template.New("eventIdeas").Parse(
		`You are an expert event planner for a Christian church.

Your task is to generate 3 creative and engaging event ideas based on the following keywords: {{.Keywords}}.

For each idea, provide a compelling title and a short description.
The ideas should be suitable for a church community context.`))

	sermonOutlineTmpl = template.Must(template.New("sermonOutline").Parse(
		`You are an expert theologian and pastor, skilled at crafting clear and impactful sermons for a Christian congregation.

Your task is to create a sermon outline based on the provided topic and scriptures.

Topic: {{.Topic}}
Key Scriptures: {{.Scriptures}}

The outline must include:
1. A compelling sermon title.
2. An "Introduction" that grabs the audience's attention and introduces the topic.
3. At least two "Main Points" that develop the topic, using the provided scriptures as a foundation. Explain the scriptures and provide practical applications.
4. A "Conclusion" that summarizes the key takeaways and offers a call to action or encouragement.

For each point in the outline, provide a title, detailed content, and a list of supporting verses.`))

	dailyQuoteTmpl = template.Must(template.New("dailyQuote").Parse(
		`You are a source of daily encouragement for a Christian community.

Your task is to generate a single, uplifting quote for the day. It should be concise and filled with hope.

Also, provide a single, relevant Bible verse that underpins the message of the quote.`))

	counselTmpl = template.Must(template.New("counsel").Parse(
		`You are a wise, empathetic, and experienced Christian pastor and counselor. A member of your community has come to you seeking guidance for a personal struggle.

Your task is to provide a response that is filled with hope, grounded in scripture, and offers gentle, practical advice. You must not give medical or clinical advice, but rather spiritual and pastoral guidance.

The user is struggling with: {{.Problem}}

Your response must be structured into three parts:
1. A "Hopeful Message": Start with a warm, compassionate message. Acknowledge their pain and courage for reaching out. Remind them of God's love, grace, and power to bring healing and restoration.
2. "Relevant Scriptures": Identify and list 2-3 key Bible verses that speak directly to their situation.
3. "Practical Advice": Offer a few gentle, actionable steps they can take. This should be spiritual in nature, such as specific prayers, journaling prompts for reflection, or encouragement to connect with a trusted friend or the church community for support. Frame this as a spiritual next step, not a clinical treatment plan.

Your tone should always be loving, non-judgmental, and encouraging.`))
)

func render(t *template.Template, data any) (string, error) {
	var b strings.Builder
	if err := t.Execute(&b, data); err != nil {
		return "", err
	}
	return b.String(), nil
}

/* ------------------------------ response schemas ------------------------------ */

func str(desc string) *genai.Schema {
	return &genai.Schema{Type: genai.TypeString, Description: desc}
}

func strList(desc string) *genai.Schema {
	return &genai.Schema{Type: genai.TypeArray, Description: desc, Items: &genai.Schema{Type: genai.TypeString}}
}

var eventIdeasSchema = &genai.Schema{
	Type: genai.TypeObject,
	Properties: map[string]*genai.Schema{
		"eventIdeas": {
			Type:        genai.TypeArray,
			Description: "An array of 3 creative event ideas.",
			Items: &genai.Schema{
				Type: genai.TypeObject,
				Properties: map[string]*genai.Schema{
					"title":       str("A creative and catchy title for the event."),
					"description": str("A brief, one-paragraph description of the event concept."),
				},
				Required: []string{"title", "description"},
			},
		},
	},
	Required: []string{"eventIdeas"},
}

var sermonOutlineSchema = &genai.Schema{
	Type: genai.TypeObject,
	Properties: map[string]*genai.Schema{
		"sermonTitle": str("A compelling title for the sermon based on the topic."),
		"outline": {
			Type:        genai.TypeArray,
			Description: "Sermon points: an introduction, at least two main points, and a conclusion.",
			Items: &genai.Schema{
				Type: genai.TypeObject,
				Properties: map[string]*genai.Schema{
					"pointTitle":       str("The title of this section of the sermon."),
					"content":          str("The detailed content for this section."),
					"supportingVerses": strList("Supporting scripture references for this point."),
				},
				Required: []string{"pointTitle", "content", "supportingVerses"},
			},
		},
	},
	Required: []string{"sermonTitle", "outline"},
}

var dailyQuoteSchema = &genai.Schema{
	Type: genai.TypeObject,
	Properties: map[string]*genai.Schema{
		"quote": str("A short, inspirational, and hopeful quote for the day."),
		"verse": str(`A relevant Bible verse that complements the quote (e.g., "John 3:16").`),
	},
	Required: []string{"quote", "verse"},
}

var counselSchema = &genai.Schema{
	Type: genai.TypeObject,
	Properties: map[string]*genai.Schema{
		"hopefulMessage":     str("A compassionate and encouraging message offering hope from a Christian perspective."),
		"relevantScriptures": strList("2-3 key Bible verses that address the problem."),
		"practicalAdvice":    str("Gentle, practical, spiritual next steps. Not medical advice."),
	},
	Required: []string{"hopefulMessage", "relevantScriptures", "practicalAdvice"},
}
