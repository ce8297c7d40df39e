package generation

import "fmt"

const systemPrompt = `You are a recruitment writing assistant for nonprofit
organizations. You write clear, inclusive job descriptions with these sections:
About the Organization, Role Summary, Key Responsibilities, Required
Qualifications, Desired Qualifications, and How to Apply. Use plain language,
avoid jargon, and keep the tone warm and mission-driven.`

func briefPrompt(brief string) string {
	return fmt.Sprintf(
		"Write a complete job description from this hiring brief:\n\n%s", brief)
}

func briefWithContextPrompt(brief, context string) string {
	return fmt.Sprintf(
		"Write a complete job description from this hiring brief. Use the "+
			"organization page content below for background about the "+
			"organization and its mission.\n\nHiring brief:\n%s\n\n"+
			"Organization page content:\n%s", brief, context)
}

func rewritePrompt(posting string) string {
	return fmt.Sprintf(
		"Rewrite the following existing job posting into a clearer, better "+
			"structured job description. Preserve all factual details "+
			"(title, location, salary, deadlines) exactly as given.\n\n"+
			"Existing posting:\n%s", posting)
}

func refinePrompt(extracted string) string {
	return fmt.Sprintf(
		"The text below was extracted from an uploaded job description "+
			"document. Refine and restructure it into a polished job "+
			"description, preserving every factual detail.\n\n"+
			"Extracted text:\n%s", extracted)
}
