package analysis

const (
	summaryPrompt = "You are a research analyst. Summarize the following text in 3 concise bullet points. Be neutral and factual."

	tagsPrompt = "You are a metadata specialist. Based on the following summary, generate a list of 3-5 relevant topic tags in kebab-case. " +
		"The tags should be specific and useful for categorization. Return ONLY a comma-separated list of tags, with no other text."

	languagePrompt = "Identify the primary language of the following text. Respond with 'en' if the text is English or 'zh' if it is Mandarin Chinese."

	metadataPrompt = "You are a document analysis engine. Identify the author(s), title, publication date, and primary subject matter from the text. " +
		"Return a JSON object with keys 'authors', 'title', 'date', and 'subject'. Use YYYY-MM-DD for the date if possible."

	// filenamePrompt is completed with the original file extension.
	filenamePrompt = "You are a file naming expert. Based on the following tags, create a standardized filename. " +
		"The format is YYYY-MM-DD_[Primary-Tag]_[Keywords]%s. Use the most important tag first. Respond with ONLY the filename."
)
