package content

// LLM prompt templates. Data only.

const hashtagSystem = "You are a hashtag generator. Respond only with comma-separated hashtags."

// hashtagPrompt asks for a short comma-separated hashtag list.
// Args: content summary.
const hashtagPrompt = `Generate 5-7 relevant hashtags for this YouTube video.
Your response must be ONLY a comma-separated list of hashtags, nothing else.

Example:
#YouTube, #ContentCreator, #Tutorial

Requirements:
- Each hashtag starts with #
- No spaces inside a hashtag
- No quotes or special characters
- Mix popular and niche terms

Video content:
%s`

const postSystem = "You are a social media expert. Create platform-specific posts. Return only valid JSON."

// postPrompt builds one platform post.
// Args: platform name, max length, style directive, video link, hashtags, content summary.
const postPrompt = `Write a %s post promoting this YouTube video.

Respond with valid JSON only (no markdown, no ` + "`" + `json` + "`" + ` block):
{"post": "the post text"}

Rules:
- At most %d characters
- Style: %s
- Include the video link: %s
- Use some of these hashtags where they fit: %s

Video content:
%s`

const summarySystem = "You are a content summarizer. Create a concise summary."

// summaryPrompt. Args: max words, text.
const summaryPrompt = `Summarize this text in %d words or less:
%s`

const seoSystem = "You are an SEO expert. Provide analysis in valid JSON format only."

// seoPrompt. Args: title, description, tags.
const seoPrompt = `Analyze this YouTube content for SEO optimization.

Respond with valid JSON only:
{
  "title_suggestions": ["improved title 1", "improved title 2", "improved title 3"],
  "description_improvements": "specific suggestions for the description",
  "tag_suggestions": ["tag1", "tag2", "tag3"],
  "missing_elements": ["element1", "element2"]
}

Title: %s
Description: %s
Current tags: %s`

const trendsSystem = "You are a content strategy expert. Analyze trends and return only valid JSON."

// trendsPrompt. Args: category, recent social posts block (may be empty).
const trendsPrompt = `Analyze trending topics for YouTube content.

Respond with valid JSON only:
{
  "trending_topics": ["topic1", "topic2", "topic3"],
  "content_ideas": ["idea1", "idea2", "idea3"],
  "best_practices": ["practice1", "practice2", "practice3"],
  "optimal_timing": "best posting times and frequency"
}

Category: %s
%s`

const transcriptSystem = "You are an expert transcriber. Format text into clean, readable transcriptions."

// transcriptPrompt. Args: raw transcript.
const transcriptPrompt = `Clean and format this transcription. Fix punctuation, split it into paragraphs and add speaker labels if you can detect them:

%s

Return plain text only.`

const keyPointsSystem = "You are a content analyzer. Extract key points from transcriptions."

// keyPointsPrompt. Args: transcript.
const keyPointsPrompt = `Extract the main key points from this transcription.
Return 5-7 points, one per line, focusing on the main ideas and takeaways:

%s`

const scriptSystem = "You are a video script writer. Create engaging scripts in valid JSON format only."

// scriptPrompt. Args: title, outline.
const scriptPrompt = `Create a video script.

Respond with valid JSON only:
{
  "intro": "hook and introduction",
  "sections": [
    {"title": "section title", "content": "section content"}
  ],
  "outro": "call to action and closing",
  "timestamps": [
    {"time": "00:00", "description": "Intro"}
  ]
}

Title: %s
Outline: %s`
