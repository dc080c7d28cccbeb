package util

// 角色，与认证服务签发的 role 字段一致
const (
	RoleStudent = "student"
	RoleTeacher = "teacher"
	RoleAdmin   = "admin"
)
