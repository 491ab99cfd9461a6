// Package refbot provides the core of a documentation lookup chat bot.
// It resolves free-text queries against locally stored reference corpora
// (C++ symbols, library overview stubs, man pages) using normalized edit
// distance, renders the best match as structured display content, and
// presents long content as paginated cards navigable by the invoking user.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., fs/, sqlite/, goquery/).
package refbot
