package corpus

// Level groups lessons by difficulty.
type Level string

const (
	Beginner     Level = "Beginner"
	Intermediate Level = "Intermediate"
	Advanced     Level = "Advanced"
)

// Lesson is one step of the curriculum. Lessons unlock in id order.
type Lesson struct {
	ID          int
	Title       string
	Description string
	Level       Level
	Keys        string
	Text        string
}

var lessons = []Lesson{
	{1, "Home Row Basics", "Learn the foundation keys: A, S, D, F, J, K, L, ;", Beginner, "ASDF JKL;",
		"aaa sss ddd fff jjj kkk lll ;;; asdf jkl; fdsa ;lkj"},
	{2, "Top Row Introduction", "Master the top row: Q, W, E, R, T, Y, U, I, O, P", Beginner, "QWERTY UIOP",
		"qqq www eee rrr ttt yyy uuu iii ooo ppp qwert yuiop"},
	{3, "Bottom Row Basics", "Practice the bottom row: Z, X, C, V, B, N, M", Beginner, "ZXCVBNM",
		"zzz xxx ccc vvv bbb nnn mmm zxcv bnm cvbn"},
	{4, "Simple Words", "Combine letters to form common words", Beginner, "All letters",
		"the and for are but not you all can had her was one our out day get has him his how"},
	{5, "Numbers Row", "Learn to type numbers 1-0 efficiently", Intermediate, "1234567890",
		"111 222 333 444 555 666 777 888 999 000 12345 67890"},
	{6, "Punctuation Practice", "Master common punctuation marks", Intermediate, ".,;:!?",
		"Hello, world! How are you? I am fine. This is great; let's continue."},
	{7, "Capital Letters", "Practice using shift keys for capitalization", Intermediate, "Shift + letters",
		"The Quick Brown Fox Jumps Over The Lazy Dog. This Is A Sample Text."},
	{8, "Speed Building", "Focus on increasing typing speed with common phrases", Advanced, "All keys",
		"The quick brown fox jumps over the lazy dog. Pack my box with five dozen liquor jugs."},
}

// Lessons returns the curriculum in order.
func Lessons() []Lesson {
	out := make([]Lesson, len(lessons))
	copy(out, lessons)
	return out
}

// LessonByID finds a lesson.
func LessonByID(id int) (Lesson, bool) {
	for _, l := range lessons {
		if l.ID == id {
			return l, true
		}
	}
	return Lesson{}, false
}

// Unlocked reports whether a lesson can be started: the first lesson always,
// every later one once its predecessor is completed.
func Unlocked(id int, completed map[int]bool) bool {
	if id <= lessons[0].ID {
		return true
	}
	return completed[id-1]
}
