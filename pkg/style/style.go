package style

import (
	"maps"
	"slices"
	"strings"
)

// DefaultName は未知のスタイル名が指定されたときに使用するスタイルです。
const DefaultName = "comic"

// prefixes はスタイル名と画像プロンプトの接頭辞の固定マッピングです。
var prefixes = map[string]string{
	"comic":     "comic book style, vibrant colors, bold ink outlines",
	"manga":     "manga style, black and white",
	"superhero": "superhero comic style, dynamic action, dramatic lighting",
	"cartoon":   "cartoon style, simple shapes, bright flat colors",
}

// Resolve はスタイル名に対応するプロンプト接頭辞を返します。
// 未知の名前はエラーにせず、黙って comic の接頭辞にフォールバックします。
func Resolve(name string) string {
	key := strings.ToLower(strings.TrimSpace(name))
	if prefix, ok := prefixes[key]; ok {
		return prefix
	}
	return prefixes[DefaultName]
}

// Names はサポートしているスタイル名をソート済みで返します。ヘルプ表示用です。
func Names() []string {
	names := slices.Collect(maps.Keys(prefixes))
	slices.Sort(names)
	return names
}
