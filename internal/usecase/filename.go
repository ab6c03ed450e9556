package usecase

import (
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"github.com/google/uuid"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// 写真として受け付ける拡張子
var allowedPhotoExt = map[string]bool{
	"png":  true,
	"jpg":  true,
	"jpeg": true,
	"gif":  true,
}

var unsafeFilenameChars = regexp.MustCompile(`[^A-Za-z0-9_.-]`)

// 拡張子で判定（大文字小文字は区別しない）
func AllowedPhoto(filename string) bool {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(filename), "."))
	return allowedPhotoExt[ext]
}

// アップロード名を保存用のASCII名にする。
// 例: "Café Menü.PNG" -> "Cafe_Menu.PNG", "../../etc/passwd" -> "etc_passwd"
func SanitizeFilename(name string) string {
	name = strings.NewReplacer("/", " ", "\\", " ").Replace(name)

	t := transform.Chain(norm.NFKD, runes.Remove(runes.In(unicode.Mn)))
	if folded, _, err := transform.String(t, name); err == nil {
		name = folded
	}
	name = strings.Map(func(r rune) rune {
		if r > unicode.MaxASCII {
			return -1
		}
		return r
	}, name)

	name = strings.Join(strings.Fields(name), "_")
	name = unsafeFilenameChars.ReplaceAllString(name, "")
	return strings.Trim(name, "._")
}

// 保存名を決める。使える名前が残らなければ uuid にする
func storedPhotoName(original string) string {
	ext := strings.ToLower(filepath.Ext(original))
	name := SanitizeFilename(original)

	stem := strings.TrimSuffix(name, filepath.Ext(name))
	if stem == "" || !AllowedPhoto(name) {
		return uuid.NewString() + ext
	}
	return name
}

// "a.png" -> "a_2.png"
func numberedName(name string, n int) string {
	ext := filepath.Ext(name)
	return strings.TrimSuffix(name, ext) + "_" + strconv.Itoa(n) + ext
}
