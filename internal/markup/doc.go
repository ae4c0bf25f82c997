// ABOUTME: Package documentation for the markup span pipeline
// ABOUTME: States the whitelist and the no-raw-markup output guarantee

// Package markup converts message text with lightweight inline tokens
// into structured spans the presentation layer can render safely.
//
// The whitelist is small: **bold**, `inline code`, and [links](url)
// with http(s) destinations. Anything else, including raw HTML in user
// or model text, degrades to plain text. Because the output is a span
// sequence and never a markup string, consumers cannot be tricked into
// interpolating untrusted markup.
package markup
