package utils

type StatCode int

const (
	StatSuccess            StatCode = 0
	StatInvalidParam       StatCode = 10001
	StatUnauthorized       StatCode = 10002
	StatForbidden          StatCode = 10003
	StatNotFound           StatCode = 10004
	StatConflict           StatCode = 10005
	StatPreconditionFailed StatCode = 10006
	StatInternalError      StatCode = 20001
	StatDatabaseError      StatCode = 20002
)

var statText = map[StatCode]string{
	StatSuccess:            "ok",
	StatInvalidParam:       "invalid parameter",
	StatUnauthorized:       "unauthorized",
	StatForbidden:          "forbidden",
	StatNotFound:           "not found",
	StatConflict:           "conflict",
	StatPreconditionFailed: "precondition failed",
	StatInternalError:      "internal error",
	StatDatabaseError:      "database error",
}

func StatText(code StatCode) string {
	return statText[code]
}
