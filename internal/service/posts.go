package service

import (
	"context"
	"fmt"

	"github.com/tmls-media/vidrag/internal/domain"
)

// creativeTemperature matches the register the post templates were tuned at.
const creativeTemperature = 0.7

// TemplateName identifies one of the LinkedIn post templates.
type TemplateName string

const (
	TemplateAuthorityContradiction TemplateName = "Authority + Contradiction"
	TemplateDeathRebirth           TemplateName = "Death + Rebirth"
	TemplatePainPointHowTo         TemplateName = "Pain Point + How-To"
	TemplateImpossibleFeat         TemplateName = "Impossible Feat"
	TemplateProvocativeVision      TemplateName = "Provocative Vision"
)

// TemplateNames lists the post templates in their display order.
var TemplateNames = []TemplateName{
	TemplateAuthorityContradiction,
	TemplateDeathRebirth,
	TemplatePainPointHowTo,
	TemplateImpossibleFeat,
	TemplateProvocativeVision,
}

// TemplatePost is one generated template variation. Err carries a per-template
// generation failure so one bad call does not discard the other variations.
type TemplatePost struct {
	Name TemplateName
	Text string
	Err  error
}

// PostService generates marketing copy from a video's metadata. Every
// operation is a single templated call to the generation service; failures
// are surfaced verbatim.
type PostService struct {
	generator GenerationClient
}

// NewPostService creates a new PostService instance
func NewPostService(generator GenerationClient) *PostService {
	return &PostService{generator: generator}
}

// SocialPost writes a LinkedIn post in the MLOps World announcement style.
func (s *PostService) SocialPost(ctx context.Context, content *domain.VideoContent, videoURL string) (string, error) {
	prompt := fmt.Sprintf(`Given the following video information, write a LinkedIn post in this style:
---
What if your next model training loop could run 100B-parameter LLMs without wrestling separate stacks for training and inference, and without vendor lock-in?
This is what we covered during this session.
Hope you find this helpful!
See vid and blog post here:
➡️ [LINK_HERE]
MLOps World | GenAI Summit
Presentation Highlights
• [bullet 1]
• [bullet 2]
• [bullet 3]
...
---
Please extract the main problem or question the video addresses and phrase it as a bold, open-ended hook in the first line. Then summarize the main themes or solutions discussed in 5–6 short bullet points (Presentation Highlights), written for LinkedIn.
At the end, include 'See vid and blog post here: ➡️ %s' and add 'MLOps World | GenAI Summit'.

Video Title: %s
Channel: %s
Video Content:
%s
`, videoURL, content.Title, content.Channel, content.FullText())

	return s.generator.GenerateText(ctx, prompt, 0)
}

// DetailedSummary writes the structured long-form summary (overview,
// highlights, key insights, conclusion).
func (s *PostService) DetailedSummary(ctx context.Context, content *domain.VideoContent) (string, error) {
	prompt := fmt.Sprintf(`Create a comprehensive summary of this video following this structure:

## Summary
Write a detailed 3-4 paragraph overview that covers:
- The presenter/channel: %s
- The main topic: %s
- Key themes and approaches discussed based on the description
- Potential business applications and value
- Conclusion and takeaways for the audience

## Highlights
Create 7-10 bullet points with emojis that capture the most important takeaways from the video description.

## Key Insights
Write 5-7 detailed insights, each with a bold emoji heading, 2-3 sentences of explanation, why it matters for practitioners, and how it relates to broader trends.

## Conclusion
Write a thoughtful 2-3 sentence conclusion that ties everything together and emphasizes the practical value for viewers.

Please make the summary comprehensive, professional, and valuable for someone who wants to understand the core concepts.

Video Information:
Title: %s
Channel: %s
Published: %s
Views: %s

Content:
%s
`, content.Channel, content.Title, content.Title, content.Channel, content.Published, content.ViewCount, content.FullText())

	return s.generator.GenerateText(ctx, prompt, 0)
}

// TemplatePost generates one named template variation.
func (s *PostService) TemplatePost(ctx context.Context, name TemplateName, content *domain.VideoContent, videoURL string) (string, error) {
	structure, ok := templateStructures[name]
	if !ok {
		return "", domain.NewDomainError(domain.ErrCodeValidation, fmt.Sprintf("unknown post template: %s", name))
	}

	prompt := fmt.Sprintf(`Create a viral LinkedIn post using the %s approach.

IMPORTANT: Output clean text that can be copied directly to LinkedIn. NO markdown formatting like **bold** or [brackets]. Use emojis and natural formatting only.

Structure:
%s

Video Title: %s
Channel: %s
Content: %s

Output only clean, copy-paste ready text for LinkedIn. No markdown formatting.
`, name, fmt.Sprintf(structure, videoURL), content.Title, content.Channel, content.FullText())

	return s.generator.GenerateText(ctx, prompt, creativeTemperature)
}

// TemplateBatch is the result of one full template run: every variation plus
// the pinned comment and hashtags. PinnedErr records a pinned-comment
// generation failure the same way TemplatePost.Err does for a variation.
type TemplateBatch struct {
	Posts         []TemplatePost
	PinnedComment string
	PinnedErr     error
	Hashtags      string
}

// AllTemplatePosts generates every template variation plus the pinned comment
// and hashtags. Individual failures are recorded on the result rather than
// aborting the batch, mirroring how the variations are presented for
// selection. A hashtags failure falls back to the default set.
func (s *PostService) AllTemplatePosts(ctx context.Context, content *domain.VideoContent, videoURL string) (*TemplateBatch, error) {
	batch := &TemplateBatch{Posts: make([]TemplatePost, 0, len(TemplateNames))}
	for _, name := range TemplateNames {
		text, err := s.TemplatePost(ctx, name, content, videoURL)
		batch.Posts = append(batch.Posts, TemplatePost{Name: name, Text: text, Err: err})
	}

	pinned, err := s.PinnedComment(ctx, content)
	if err != nil {
		batch.PinnedErr = err
	} else {
		batch.PinnedComment = pinned
	}

	hashtags, err := s.Hashtags(ctx, content)
	if err != nil {
		hashtags = defaultHashtags
	}
	batch.Hashtags = hashtags

	return batch, nil
}

// PinnedComment writes the strategic pinned comment for a post.
func (s *PostService) PinnedComment(ctx context.Context, content *domain.VideoContent) (string, error) {
	prompt := fmt.Sprintf(`Create a strategic pinned comment based on this video content.

IMPORTANT: Output clean text for LinkedIn. NO markdown formatting like **bold** or [brackets]. Use emojis and natural formatting only.

Format should be:
🔥 BONUS: Just for this community - the X biggest mistakes/insights about topic:

1. Specific insight #1
2. Specific insight #2
3. Specific insight #3

Drop a 🚀 if you want me to break these down!

Plus - anyone attending TMLS can connect with me for a free 15-min consultation.

Video Title: %s
Channel: %s
Content: %s

Output only clean text - no markdown formatting.
`, content.Title, content.Channel, content.FullText())

	return s.generator.GenerateText(ctx, prompt, creativeTemperature)
}

const defaultHashtags = "#AI #MachineLearning #TMLS"

// Hashtags suggests hashtags for a post about the video.
func (s *PostService) Hashtags(ctx context.Context, content *domain.VideoContent) (string, error) {
	prompt := fmt.Sprintf(`Generate 5-8 relevant hashtags for this LinkedIn post about a technical/AI video.

Always include: #AI #MachineLearning #TMLS
Add 2-5 topic-specific hashtags based on the content.

Video Title: %s
Content: %s

Output format: #Hashtag1 #Hashtag2 #Hashtag3 etc.
`, content.Title, content.FullText())

	return s.generator.GenerateText(ctx, prompt, creativeTemperature)
}

// templateStructures holds the structural instructions per template; %s is
// the video URL used in the register call-to-action line.
var templateStructures = map[TemplateName]string{
	TemplateAuthorityContradiction: `- Start with a hook about the topic being positive but having a hidden problem
- Add an empty line
- Add a broader appeal statement
- Establish widespread problem with numbers and expert signposting like "After X years helping Y companies..."
- Introduce the main concept with one-line analogy and brief expert credibility
- Create 3 bullet points with emojis: "• Component: Method → Benefit"
- Include results section: "Real client results I've witnessed:" followed by 3-4 metrics with emojis (⚡💾✨💰) using before→after format
- Add reality check stating one limitation and mitigation strategy
- End with: "Want the complete deliverable? Expert name (credentials) is revealing specific value including concrete examples. 🎯 Presentation type at TMLS Conference. Register here → %s"
- Close with urgency statement`,

	TemplateDeathRebirth: `- Start with "Old approach is dead. Long live new approach."
- Explain why old approach worked historically but is insufficient today
- Introduce new approach as natural evolution with expert credibility
- Break down system into 4-5 components with emojis (📊🔧🔍🧠📜): "Component: Description"
- Show how new approach solves old approach failures
- Mention one overlooked factor
- End with: "Expert is revealing the complete framework at TMLS... Register → %s"
- Close with: "What's your take on this shift?"`,

	TemplatePainPointHowTo: `- Start with "90%% of thing fail. Here's why."
- Explain 1-2 root causes with signposting
- Share tool/approach name with one-line benefit and expert mention
- Create numbered how-to guide with 3-4 steps using emojis (🔥⚡✨💎): "1. 🔥 Step Name: Description"
- State one risk/limitation and how to address it
- Add single-sentence takeaway of why this matters
- End with: "Want the advanced implementation? Expert breaks down the complete system at TMLS... Register → %s"
- Close with: "What's been your biggest challenge with topic?"`,

	TemplateImpossibleFeat: `- Start with "How do you impossible task?" followed by "You can't... not all at once, anyway."
- Introduce real solution that makes it possible
- Explain concept in plain language with expert signposting
- List 3-4 methods with emojis (🔢📝📄🧠): "🔢 Method: Description + pro/con"
- Add advice on when to use which method
- Include truth bomb or memorable analogy
- End with: "Ready for the deep dive? Expert reveals the complete methodology at TMLS... Register → %s"
- Close with: "Which method would you try first?"`,

	TemplateProvocativeVision: `- Start with "Overlooked factor undermines even the best system/tool."
- Show why most people overlook this factor with signposting
- Create 5-7 variations: "Variation: Best for: X | Avoid for: Y"
- Provide starting point and iteration approach recommendation
- Tie micro-choice to macro outcomes (ROI, adoption, reliability)
- Discuss how this evolves over next 12-24 months
- End with: "Want to stay ahead of the curve? Expert shares the complete roadmap at TMLS... Register → %s"
- Close with: "What are you doing about this today?"`,
}
