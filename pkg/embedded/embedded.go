// Package embedded 提供嵌入配置数据的统一访问接口
//
// 由于 Go embed 指令只能嵌入当前包目录及其子目录的文件，
// embed.FS 变量必须声明在项目根目录（embed.go）。
// 本包提供包装函数，让其他包可以访问嵌入的 data/ 目录。
//
// 以 "data/" 开头的路径优先从嵌入文件系统读取；
// 其他路径（例如 -config 指定的磁盘文件、测试中的临时文件）直接从磁盘读取。
package embedded

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

var (
	dataFS      fs.FS
	initialized bool
)

// Init 初始化嵌入文件系统
// 必须在 main() 开始时、任何配置加载之前调用
func Init(data fs.FS) {
	dataFS = data
	initialized = data != nil
}

// IsInitialized 返回 embedded 包是否已初始化
func IsInitialized() bool {
	return initialized
}

// normalize 标准化路径分隔符并移除 "./" 前缀（embed.FS 使用正斜杠）
func normalize(path string) string {
	path = filepath.ToSlash(path)
	return strings.TrimPrefix(path, "./")
}

// isEmbeddedPath 判断路径是否属于嵌入的 data/ 目录
func isEmbeddedPath(path string) bool {
	return strings.HasPrefix(path, "data/")
}

// ReadFile 读取文件内容
//
// 查找顺序：
//  1. "data/" 路径且已初始化：从嵌入文件系统读取
//  2. 其他情况：从磁盘读取
func ReadFile(path string) ([]byte, error) {
	normalized := normalize(path)

	if isEmbeddedPath(normalized) {
		if !initialized {
			return nil, fmt.Errorf("embedded package not initialized, call Init() first")
		}
		data, err := fs.ReadFile(dataFS, normalized)
		if err == nil {
			return data, nil
		}
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, err
		}
		// 嵌入文件系统中不存在时回退到磁盘，方便开发时直接修改 data/ 下的文件
	}

	return os.ReadFile(path)
}

// Exists 检查文件是否存在（嵌入文件系统或磁盘）
func Exists(path string) bool {
	normalized := normalize(path)
	if isEmbeddedPath(normalized) && initialized {
		if _, err := fs.Stat(dataFS, normalized); err == nil {
			return true
		}
	}
	_, err := os.Stat(path)
	return err == nil
}
