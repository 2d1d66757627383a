//go:build !mobile

// 桌面构建时 mobile 包只剩这个占位，真正的绑定入口在 mobile.go（-tags mobile）
package mobile

// Dummy 让 ebitenmobile bind 之外的构建也能引用本包
func Dummy() {}
