package recipe

// termTable は内部の列挙値を各言語の自然な表現に対応付ける。
// 対応が存在しないキーは内部値をそのまま使用する（フォールバック）。
type termTable struct {
	LengthDesc    map[string]string
	FormDesc      map[string]string
	VolumeDesc    map[string]string
	FringeDesc    map[string]string
	FaceShapeDesc map[string]string
}

// lookup はテーブルから訳語を引く。未登録のキーは raw のまま返し、
// raw が空の場合は言語ごとの汎用プレースホルダを返す。
func (t termTable) lookup(m map[string]string, raw, placeholder string) string {
	if raw == "" {
		return placeholder
	}
	if v, ok := m[raw]; ok {
		return v
	}
	return raw
}

// promptText は言語ごとのプロンプト定型文を保持する
type promptText struct {
	Role     string // 役割宣言（ステージ1）
	Security string // 秘匿ルールブロック（ステージ2、全言語で必須）

	AnalysisHeader string
	LabelLength    string
	LabelForm      string
	LabelVolume    string
	LabelFringe    string
	LabelLifting   string
	LabelTexture   string
	LabelFaces     string

	ReferenceHeader string
	ReferenceNone   string

	ProcedureHeader string
	StepGoal        string
	StepSectioning  string
	StepLifting     string
	StepTechnique   string

	TextureHeader   string
	TextureBody     string
	StylingHeader   string
	StylingBody     string
	AdvisoryHeader  string
	AdvisoryBody    string

	Closing     string // 出力言語の固定とメタ発言の禁止（ステージ6）
	Placeholder string // 欠損フィールドの汎用表現
	AllFaces    string // 顔型未指定時の表現

	FixedStages [5]string // チャンクなし時の固定カット手順（ネープ→バック→サイド→クラウン→前髪）
}

type langPack struct {
	Terms termTable
	Text  promptText
}

var langPacks = map[Language]langPack{
	LanguageKorean: {
		Terms: termTable{
			LengthDesc: map[string]string{
				"A Length": "가슴 아래 밑선",
				"B Length": "가슴 상단~중간",
				"C Length": "쇄골 밑선",
				"D Length": "어깨선",
				"E Length": "어깨 위 2-3cm",
				"F Length": "턱뼈 아래",
				"G Length": "턱선",
				"H Length": "귀 높이",
			},
			FormDesc: map[string]string{
				"O": "One Length, 원렝스",
				"G": "Graduation, 그래쥬에이션",
				"L": "Layer, 레이어",
			},
			VolumeDesc: map[string]string{
				"Low":    "하단 볼륨 (0~44도)",
				"Medium": "중단 볼륨 (45~89도)",
				"High":   "상단 볼륨 (90도 이상)",
			},
			FringeDesc: map[string]string{
				"Heavy Fringe":      "무거운 앞머리",
				"Light Fringe":      "가벼운 앞머리",
				"Side-Swept Fringe": "옆으로 넘긴 앞머리",
				"Side Bang":         "사이드 뱅",
				"See-through Bang":  "시스루 뱅",
				"Curtain Fringe":    "커튼 앞머리",
				"Curtain Bang":      "커튼 뱅",
				"No Fringe":         "앞머리 없음",
			},
			FaceShapeDesc: map[string]string{
				"Oval":    "계란형",
				"Round":   "둥근형",
				"Square":  "사각형",
				"Heart":   "하트형",
				"Long":    "긴 얼굴형",
				"Diamond": "다이아몬드형",
			},
		},
		Text: promptText{
			Role: "당신은 전문 헤어 스타일리스트입니다.",
			Security: `**🔒 보안 규칙 (철저히 준수):**
다음 용어들은 절대 언급 금지하되, 원리는 레시피에 반영:
- 포뮬러 번호 (DBS NO.3, VS NO.6 등) → "뒷머리 기법", "중앙 기법"으로 표현
- 각도 코드 (L2(45°), D4(180°) 등) → 각도 숫자는 명시하되 코드는 숨김
- 섹션 이름 (가로섹션, 후대각섹션 등) → "상단 부분", "뒷머리 부분"으로 표현
- 42층 구조, 7섹션 시스템 → "체계적인 구조"로 표현
- 9개 매트릭스 → "전문적인 분류"로 표현`,
			AnalysisHeader:  "**📊 분석 결과:**",
			LabelLength:     "길이",
			LabelForm:       "형태",
			LabelVolume:     "볼륨",
			LabelFringe:     "앞머리",
			LabelLifting:    "리프팅",
			LabelTexture:    "질감",
			LabelFaces:      "어울리는 얼굴형",
			ReferenceHeader: "**🎓 이론 근거 (참고용 - 직접 인용 금지):**",
			ReferenceNone:   "(이론 참고 자료 없음)",
			ProcedureHeader: "**📋 상세 커팅 순서:**",
			StepGoal:        "목적",
			StepSectioning:  "분할 방법",
			StepLifting:     "리프팅 각도",
			StepTechnique:   "커팅 기법 (비율 포함)",
			TextureHeader:   "### 질감 처리",
			TextureBody: `- 1차 질감: %s
- 2차 질감: %s
- 마무리: 포인트 컷 또는 틴닝 20-30%%`,
			StylingHeader: "### 스타일링 가이드",
			StylingBody: `- 드라이: %s
- 아이론/고데기: %s
- 제품: %s`,
			AdvisoryHeader: "### 얼굴형·모질별 조언",
			AdvisoryBody: `- 추천 얼굴형: %s
- 모질: %s 특성에 맞춰 질감 비율 조절
- 다듬기 주기: 4-6주`,
			Closing:     "모든 내용을 **한국어로만** 작성하세요. 레시피 외의 설명이나 메타 코멘트는 금지합니다.",
			Placeholder: "스타일에 맞게 조정",
			AllFaces:    "모든 얼굴형",
			FixedStages: [5]string{
				"목 부위 (네이프존) - 기준선 설정",
				"뒷머리 부분 - 그래쥬에이션/레이어 형성",
				"사이드 부분 - 얼굴 라인 연출",
				"상단 부분 (크라운) - 볼륨 포인트",
				"앞머리 (뱅) - 디테일 완성",
			},
		},
	},
	LanguageEnglish: {
		Terms: termTable{
			LengthDesc: map[string]string{
				"A Length": "Below chest baseline",
				"B Length": "Upper to mid chest",
				"C Length": "Below collarbone",
				"D Length": "Shoulder line",
				"E Length": "2-3cm above shoulder",
				"F Length": "Below jawbone",
				"G Length": "Jaw line",
				"H Length": "Ear level",
			},
			FormDesc: map[string]string{
				"O": "One Length",
				"G": "Graduation",
				"L": "Layer",
			},
			VolumeDesc: map[string]string{
				"Low":    "Low volume (0-44°)",
				"Medium": "Medium volume (45-89°)",
				"High":   "High volume (90°+)",
			},
			FringeDesc: map[string]string{
				"Heavy Fringe":      "Heavy fringe",
				"Light Fringe":      "Light fringe",
				"Side-Swept Fringe": "Side-swept fringe",
				"Side Bang":         "Side bang",
				"See-through Bang":  "See-through bang",
				"Curtain Fringe":    "Curtain fringe",
				"Curtain Bang":      "Curtain bang",
				"No Fringe":         "No fringe",
			},
			FaceShapeDesc: map[string]string{
				"Oval":    "Oval",
				"Round":   "Round",
				"Square":  "Square",
				"Heart":   "Heart",
				"Long":    "Long",
				"Diamond": "Diamond",
			},
		},
		Text: promptText{
			Role: "You are a professional hair stylist.",
			Security: `**🔒 Security rules (strictly enforced):**
Never mention the following terms; reflect only their effects in the recipe:
- Formula numbers (DBS NO.3, VS NO.6, etc.) → describe as "back technique", "center technique"
- Angle codes (L2(45°), D4(180°), etc.) → state the angle in degrees, hide the code
- Section names (horizontal section, diagonal backward section, etc.) → describe as "upper area", "back area"
- 42-layer structure, 7-section system → describe as "a systematic structure"
- 9-matrix → describe as "a professional classification"`,
			AnalysisHeader:  "**📊 Analysis:**",
			LabelLength:     "Length",
			LabelForm:       "Form",
			LabelVolume:     "Volume",
			LabelFringe:     "Fringe",
			LabelLifting:    "Lifting",
			LabelTexture:    "Texture",
			LabelFaces:      "Recommended face shapes",
			ReferenceHeader: "**🎓 Theory references (for grounding only - do not quote directly):**",
			ReferenceNone:   "(no theory references available)",
			ProcedureHeader: "**📋 Detailed cutting sequence:**",
			StepGoal:        "Goal",
			StepSectioning:  "Sectioning",
			StepLifting:     "Lifting angle",
			StepTechnique:   "Technique (with ratio)",
			TextureHeader:   "### Texturizing",
			TextureBody: `- Primary texture: %s
- Secondary texture: %s
- Finish: point cut or thinning 20-30%%`,
			StylingHeader: "### Styling guide",
			StylingBody: `- Blow-dry: %s
- Iron: %s
- Products: %s`,
			AdvisoryHeader: "### Face shape & hair type advice",
			AdvisoryBody: `- Recommended face shapes: %s
- Hair type: adjust texturizing ratio for %s hair
- Trim cycle: every 4-6 weeks`,
			Closing:     "Write everything in **English only**. Do not add meta commentary outside the recipe.",
			Placeholder: "adjust to suit the style",
			AllFaces:    "all face shapes",
			FixedStages: [5]string{
				"Nape zone - set the baseline",
				"Back area - build graduation/layers",
				"Side area - shape the face line",
				"Crown - volume point",
				"Fringe - finishing details",
			},
		},
	},
	LanguageJapanese: {
		Terms: termTable{
			LengthDesc: map[string]string{
				"A Length": "胸下ライン",
				"B Length": "胸上〜胸中間",
				"C Length": "鎖骨下",
				"D Length": "肩のライン",
				"E Length": "肩上2-3cm",
				"F Length": "あご下",
				"G Length": "あごのライン",
				"H Length": "耳の高さ",
			},
			FormDesc: map[string]string{
				"O": "ワンレングス",
				"G": "グラデーション",
				"L": "レイヤー",
			},
			VolumeDesc: map[string]string{
				"Low":    "下部ボリューム (0〜44度)",
				"Medium": "中間ボリューム (45〜89度)",
				"High":   "上部ボリューム (90度以上)",
			},
			FringeDesc: map[string]string{
				"Heavy Fringe":      "重めの前髪",
				"Light Fringe":      "軽めの前髪",
				"Side-Swept Fringe": "流し前髪",
				"Side Bang":         "サイドバング",
				"See-through Bang":  "シースルーバング",
				"Curtain Fringe":    "カーテンバング",
				"Curtain Bang":      "カーテンバング",
				"No Fringe":         "前髪なし",
			},
			FaceShapeDesc: map[string]string{
				"Oval":    "卵型",
				"Round":   "丸型",
				"Square":  "四角型",
				"Heart":   "ハート型",
				"Long":    "面長",
				"Diamond": "ダイヤモンド型",
			},
		},
		Text: promptText{
			Role: "あなたはプロのヘアスタイリストです。",
			Security: `**🔒 セキュリティルール（厳守）:**
以下の用語は絶対に出力せず、原理だけをレシピに反映すること:
- フォーミュラ番号 (DBS NO.3, VS NO.6 など) → 「後頭部の技法」「中央の技法」と表現
- 角度コード (L2(45°), D4(180°) など) → 角度の数値のみ明示しコードは隠す
- セクション名（水平セクション、後方斜めセクションなど）→「上部」「後頭部」と表現
- 42層構造・7セクションシステム → 「体系的な構造」と表現
- 9マトリクス → 「専門的な分類」と表現`,
			AnalysisHeader:  "**📊 分析結果:**",
			LabelLength:     "長さ",
			LabelForm:       "形状",
			LabelVolume:     "ボリューム",
			LabelFringe:     "前髪",
			LabelLifting:    "リフティング",
			LabelTexture:    "質感",
			LabelFaces:      "似合う顔型",
			ReferenceHeader: "**🎓 理論参照（根拠用 - 直接引用禁止）:**",
			ReferenceNone:   "（理論参照資料なし）",
			ProcedureHeader: "**📋 詳細カット手順:**",
			StepGoal:        "目的",
			StepSectioning:  "分け取り方法",
			StepLifting:     "リフティング角度",
			StepTechnique:   "カット技法（比率込み）",
			TextureHeader:   "### 質感処理",
			TextureBody: `- 一次質感: %s
- 二次質感: %s
- 仕上げ: ポイントカットまたはセニング 20-30%%`,
			StylingHeader: "### スタイリングガイド",
			StylingBody: `- ドライ: %s
- アイロン: %s
- プロダクト: %s`,
			AdvisoryHeader: "### 顔型・髪質別アドバイス",
			AdvisoryBody: `- 推奨顔型: %s
- 髪質: %s の特性に合わせて質感比率を調整
- メンテナンス周期: 4〜6週間`,
			Closing:     "すべての内容を**日本語のみ**で記述してください。レシピ以外の説明やメタコメントは禁止です。",
			Placeholder: "スタイルに合わせて調整",
			AllFaces:    "すべての顔型",
			FixedStages: [5]string{
				"ネープゾーン - ベースライン設定",
				"後頭部 - グラデーション/レイヤー形成",
				"サイド - 顔まわりのライン作り",
				"クラウン - ボリュームポイント",
				"前髪 - ディテール仕上げ",
			},
		},
	},
	LanguageVietnamese: {
		Terms: termTable{
			LengthDesc: map[string]string{
				"A Length": "Dưới ngực",
				"B Length": "Ngang ngực",
				"C Length": "Dưới xương quai xanh",
				"D Length": "Ngang vai",
				"E Length": "Trên vai 2-3cm",
				"F Length": "Dưới xương hàm",
				"G Length": "Ngang cằm",
				"H Length": "Ngang tai",
			},
			FormDesc: map[string]string{
				"O": "One Length",
				"G": "Graduation",
				"L": "Layer",
			},
			VolumeDesc: map[string]string{
				"Low":    "Phồng thấp (0-44°)",
				"Medium": "Phồng vừa (45-89°)",
				"High":   "Phồng cao (90°+)",
			},
			FringeDesc: map[string]string{
				"Heavy Fringe":      "Mái dày",
				"Light Fringe":      "Mái mỏng",
				"Side-Swept Fringe": "Mái lệch",
				"Side Bang":         "Mái lệch",
				"See-through Bang":  "Mái thưa",
				"Curtain Fringe":    "Mái rèm",
				"Curtain Bang":      "Mái rèm",
				"No Fringe":         "Không mái",
			},
			FaceShapeDesc: map[string]string{
				"Oval":    "Mặt trái xoan",
				"Round":   "Mặt tròn",
				"Square":  "Mặt vuông",
				"Heart":   "Mặt trái tim",
				"Long":    "Mặt dài",
				"Diamond": "Mặt kim cương",
			},
		},
		Text: promptText{
			Role: "Bạn là một nhà tạo mẫu tóc chuyên nghiệp.",
			Security: `**🔒 Quy tắc bảo mật (bắt buộc tuân thủ):**
Tuyệt đối không nhắc đến các thuật ngữ sau, chỉ phản ánh nguyên lý vào công thức:
- Số formula (DBS NO.3, VS NO.6, v.v.) → diễn đạt là "kỹ thuật phía sau", "kỹ thuật trung tâm"
- Mã góc (L2(45°), D4(180°), v.v.) → chỉ ghi số độ, ẩn mã
- Tên section (section ngang, section chéo sau, v.v.) → diễn đạt là "phần trên", "phần sau"
- Cấu trúc 42 lớp, hệ thống 7 section → diễn đạt là "cấu trúc có hệ thống"
- 9 matrix → diễn đạt là "phân loại chuyên nghiệp"`,
			AnalysisHeader:  "**📊 Kết quả phân tích:**",
			LabelLength:     "Độ dài",
			LabelForm:       "Hình dạng",
			LabelVolume:     "Độ phồng",
			LabelFringe:     "Mái",
			LabelLifting:    "Góc nâng",
			LabelTexture:    "Kết cấu",
			LabelFaces:      "Khuôn mặt phù hợp",
			ReferenceHeader: "**🎓 Tài liệu lý thuyết (chỉ để tham khảo - không trích dẫn trực tiếp):**",
			ReferenceNone:   "(không có tài liệu lý thuyết)",
			ProcedureHeader: "**📋 Trình tự cắt chi tiết:**",
			StepGoal:        "Mục đích",
			StepSectioning:  "Cách chia tóc",
			StepLifting:     "Góc nâng",
			StepTechnique:   "Kỹ thuật cắt (kèm tỷ lệ)",
			TextureHeader:   "### Xử lý kết cấu",
			TextureBody: `- Kết cấu lần 1: %s
- Kết cấu lần 2: %s
- Hoàn thiện: point cut hoặc tỉa 20-30%%`,
			StylingHeader: "### Hướng dẫn tạo kiểu",
			StylingBody: `- Sấy: %s
- Máy uốn/duỗi: %s
- Sản phẩm: %s`,
			AdvisoryHeader: "### Tư vấn theo khuôn mặt và chất tóc",
			AdvisoryBody: `- Khuôn mặt phù hợp: %s
- Chất tóc: điều chỉnh tỷ lệ kết cấu cho tóc %s
- Chu kỳ cắt tỉa: 4-6 tuần`,
			Closing:     "Viết toàn bộ nội dung **chỉ bằng tiếng Việt**. Không thêm bình luận ngoài công thức.",
			Placeholder: "điều chỉnh theo kiểu tóc",
			AllFaces:    "mọi khuôn mặt",
			FixedStages: [5]string{
				"Vùng gáy - đặt đường chuẩn",
				"Phần sau - tạo graduation/layer",
				"Phần bên - tạo đường viền khuôn mặt",
				"Đỉnh đầu - điểm phồng",
				"Mái - hoàn thiện chi tiết",
			},
		},
	},
}

// packFor は言語に対応する langPack を返す。未対応言語は韓国語にフォールバックする。
func packFor(lang Language) langPack {
	if pack, ok := langPacks[lang]; ok {
		return pack
	}
	return langPacks[DefaultLanguage]
}

// SecurityRuleBlock は指定言語の秘匿ルールブロックを返す。
// すべてのプロンプトにこのブロックがそのまま含まれる。
func SecurityRuleBlock(lang Language) string {
	return packFor(lang).Text.Security
}
