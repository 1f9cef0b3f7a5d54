// Package lyrics turns raw lyric text into ordered lines.
//
// Lines keep their input order because the matcher assumes lyric order
// follows singing order. Blank lines are dropped and surrounding whitespace is
// trimmed; nothing else about the text is normalized. Lyric files may also be
// MP3s carrying an ID3 USLT frame.
package lyrics
