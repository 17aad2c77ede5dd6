package consts

// ApplicationName 应用名称
const ApplicationName = "Rhyming Pairs Server"

// ApplicationVersion 后端版本，构建时可通过 -ldflags "-X .../internal/consts.ApplicationVersion=x" 覆盖
var ApplicationVersion = "dev"

const (
	// DefaultBucket 谜题图片所在的存储桶
	DefaultBucket = "puzzleimages"
	// DefaultPuzzleFilename 上传未携带文件名时使用的默认名
	DefaultPuzzleFilename = "puzzle.jpg"
	// PuzzleTable 谜题元数据表名
	PuzzleTable = "puzzles"
)

// 上传表单字段名
const (
	FieldAnswer1A  = "answer_1a"
	FieldAnswer1B  = "answer_1b"
	FieldAnswer2A  = "answer_2a"
	FieldAnswer2B  = "answer_2b"
	FieldHints     = "hints"
	FieldPublishAt = "publish_at"
)

// AnswerFields 四个必填答案字段，顺序即展示顺序
var AnswerFields = []string{FieldAnswer1A, FieldAnswer1B, FieldAnswer2A, FieldAnswer2B}
