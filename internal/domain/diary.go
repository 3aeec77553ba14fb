package domain

// DiaryUnit is a subject summary for a period (getDiaryUnits).
type DiaryUnit struct {
	UnitID    int64      `json:"unitId"`
	UnitName  string     `json:"unitName"`
	OverMark  *float64   `json:"overMark"`
	TotalMark FlexString `json:"totalMark"`
	Rating    string     `json:"rating"`
}

// DiaryMark is a single mark inside a lesson part.
type DiaryMark struct {
	MarkID    int64      `json:"markId"`
	MarkValue FlexString `json:"markValue"`
	MarkDate  string     `json:"markDt"`
}

// DiaryLessonPart is one graded or assigned part of a lesson.
type DiaryLessonPart struct {
	Category string         `json:"cat"`
	Weight   *float64       `json:"mrkWt"`
	Marks    []DiaryMark    `json:"mark"`
	Variants []DiaryVariant `json:"variant"`
}

// DiaryPeriodLesson is a lesson row from getDiaryPeriod_.
type DiaryPeriodLesson struct {
	UnitID int64             `json:"unitId"`
	Parts  []DiaryLessonPart `json:"part"`
}

// DiaryVariant is the content of a homework part.
type DiaryVariant struct {
	ID       int64       `json:"id"`
	Text     string      `json:"text"`
	Files    []DiaryFile `json:"file"`
	Deadline Millis      `json:"deadLine"`
}

// DiaryFile is an attachment reference.
type DiaryFile struct {
	ID       int64  `json:"id"`
	FileName string `json:"fileName"`
}

// DiaryUnitRef names the subject of a lesson in getPrsDiary.
type DiaryUnitRef struct {
	Name  string `json:"name"`
	Short string `json:"short"`
}

// PrsDiaryLesson is a lesson from getPrsDiary.
type PrsDiaryLesson struct {
	ID       int64             `json:"id"`
	Date     Millis            `json:"date"`
	NumInDay int               `json:"numInDay"`
	Unit     DiaryUnitRef      `json:"unit"`
	Subject  string            `json:"subject"`
	Parts    []DiaryLessonPart `json:"part"`
}

// PrsDiary is the getPrsDiary response.
type PrsDiary struct {
	Lessons []PrsDiaryLesson `json:"lesson"`
}

// HomeworkCategory marks a lesson part as homework.
const HomeworkCategory = "DZ"

// SubjectGrades is one row of the grades view: a subject with its period
// average, every mark received, and the final mark if set.
type SubjectGrades struct {
	UnitID  int64
	Subject string
	Average *float64
	Marks   []string
	Total   string
}

// HomeworkEntry is one homework assignment extracted from the diary.
type HomeworkEntry struct {
	Date    Millis
	Subject string
	Text    string
	Files   []string
}
