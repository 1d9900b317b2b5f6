package rag

const localContextInstructions = `Answer the user's question using only the context provided below.
Cite the document or page when it is part of the context. If the context does not contain the answer, say so plainly.`

const webContextInstructions = `Answer the user's question using the live web search results below.
These snippets come from a web search, not from the user's own documents; make that clear in the answer.`

const unscopedInstructions = `No supporting documents or live search results were available for this question.
Answer from general knowledge, and state clearly that this answer is not backed by a specific source and may be out of date.`

// returned verbatim when the generator itself is down; a well-formed question
// must always get some textual answer back
const generationFailureAnswer = "I wasn't able to generate an answer right now because the language model is unavailable. Please try again in a few moments."
