// Package pagesum fetches web pages, extracts their readable article text,
// and optionally forwards that text to a language model for summarization.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., goquery/, gemini/, openai/).
package pagesum
