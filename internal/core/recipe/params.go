package recipe

import (
	"strings"
)

// StyleParameters は目標ヘアスタイルの構造化された属性を表す。
// 呼び出し側から与えられ、1リクエストの間は不変として扱う。
type StyleParameters struct {
	LengthCategory   string   `json:"length_category"`   // "A Length" 〜 "H Length"
	CutForm          string   `json:"cut_form"`          // O / G / L（One Length / Graduation / Layer）
	CutCategory      string   `json:"cut_category"`      // "Women's Cut" / "Men's Cut"
	VolumeZone       string   `json:"volume_zone"`       // Low / Medium / High
	FringeType       string   `json:"fringe_type"`       // 前髪の種類
	FringeLength     string   `json:"fringe_length"`     // 前髪の長さ
	LiftingRange     []string `json:"lifting_range"`     // リフティング角度コード（L0〜L8）
	SectionPrimary   string   `json:"section_primary"`   // 主セクション方向
	TextureTechnique []string `json:"texture_technique"` // 質感処理の技法
	TextureDensity   string   `json:"texture_density"`   // Low / Medium / High
	TextureType      string   `json:"texture_type"`      // Straight / Wavy / Curly
	SilhouetteType   string   `json:"silhouette_type"`   // 仕上がりのシルエット
	FaceShapeMatch   []string `json:"face_shape_match"`  // 似合う顔型
}

// IsZero は全フィールドが未指定かどうかを返す
func (p StyleParameters) IsZero() bool {
	return p.LengthCategory == "" &&
		p.CutForm == "" &&
		p.CutCategory == "" &&
		p.VolumeZone == "" &&
		p.FringeType == "" &&
		len(p.LiftingRange) == 0 &&
		p.SectionPrimary == "" &&
		len(p.TextureTechnique) == 0 &&
		p.SilhouetteType == ""
}

// lengthQueryPhrase は長さカテゴリから検索クエリ用の韓国語フレーズへの対応。
// チャンク本文が韓国語中心のため、クエリも韓国語で組み立てると検索精度が上がる。
var lengthQueryPhrase = map[string]string{
	"A Length": "가슴 아래 롱헤어",
	"B Length": "가슴 세미롱",
	"C Length": "쇄골 세미롱",
	"D Length": "어깨선 미디엄",
	"E Length": "어깨 위 단발",
	"F Length": "턱선 보브",
	"G Length": "짧은 보브",
	"H Length": "베리숏",
}

// BuildSearchQuery はスタイルパラメータから検索クエリテキストを決定論的に組み立てる。
// query_text が与えられないリクエストで使用する。
func (p StyleParameters) BuildSearchQuery() string {
	var parts []string

	if p.LengthCategory != "" {
		if phrase, ok := lengthQueryPhrase[p.LengthCategory]; ok {
			parts = append(parts, phrase)
		} else {
			parts = append(parts, p.LengthCategory)
		}
	}

	if p.CutForm != "" {
		form := strings.TrimSpace(strings.NewReplacer("(", "", ")", "").Replace(p.CutForm))
		parts = append(parts, form)
	}

	if len(p.LiftingRange) > 0 {
		parts = append(parts, "리프팅 "+strings.Join(p.LiftingRange, " "))
	}

	if p.SectionPrimary != "" {
		parts = append(parts, "섹션 "+p.SectionPrimary)
	}

	if p.VolumeZone != "" {
		parts = append(parts, p.VolumeZone+" 볼륨")
	}

	if p.FringeType != "" && p.FringeType != "No Fringe" {
		parts = append(parts, p.FringeType)
	}

	return strings.Join(parts, ", ")
}

// Gender はカットカテゴリから検索フィルタ用の性別を返す。
// カテゴリ未指定の場合は空文字（フィルタなし）。
func (p StyleParameters) Gender() string {
	if p.CutCategory == "" {
		return ""
	}
	if strings.Contains(p.CutCategory, "Women") {
		return "female"
	}
	return "male"
}

// lengthCodePrefix は長さカテゴリからサンプルコードのプレフィックスへの対応
var lengthCodePrefix = map[string]string{
	"A Length": "FAL",
	"B Length": "FBL",
	"C Length": "FCL",
	"D Length": "FDL",
	"E Length": "FEL",
	"F Length": "FFL",
	"G Length": "FGL",
	"H Length": "FHL",
}

// LengthPrefix は長さカテゴリに対応するサンプルコードのプレフィックスを返す。
// 対応がない場合は空文字（フィルタなし）。
func (p StyleParameters) LengthPrefix() string {
	return lengthCodePrefix[p.LengthCategory]
}
