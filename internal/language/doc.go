// Package language normalizes the language codes accepted by configuration
// and requests into the forms each alignment engine expects.
//
// WhisperX takes ISO 639-1 codes ("en"), aeneas takes ISO 639-3 ("eng").
// Parsing is delegated to golang.org/x/text/language so BCP 47 tags such as
// "en-US" and three-letter codes resolve to the same base language; a short
// table of English language names covers inputs like "english".
package language
