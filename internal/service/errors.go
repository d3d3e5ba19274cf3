package service

import "errors"

// 前置条件错误：在发出任何上游变更请求之前本地检出并中止，
// 由 handler 转成用户可见的提示（非崩溃）
var (
	ErrNoActiveTenant  = errors.New("no active tenant")
	ErrNoLeaveDate     = errors.New("leave date required")
	ErrEmptyTenantCode = errors.New("tenant code required")
	ErrRoomNotFound    = errors.New("room not found")
)

// ErrSuperseded 本次拉取完成前已有更新的拉取开始，结果被丢弃
// （陈旧响应不允许覆盖更新的视图）
var ErrSuperseded = errors.New("reload superseded by a newer request")
