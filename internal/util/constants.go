package util

const (
	StorageNone  = "none"
	StorageLocal = "local"
	StorageMinio = "minio"
	StorageOSS   = "oss"
)

const (
	DriverMySQL    = "mysql"
	DriverPostgres = "postgres"
)

const (
	MimeJSON = "application/json"
)

// GradeReportPrefix 评分报告的对象存储前缀
const GradeReportPrefix = "grade-reports"
