package llm

import (
	"fmt"
	"os"
	"strings"
)

// summaryPromptFormat takes the current time and the transcript.
// The 80%% escape keeps Sprintf from eating the literal percent sign.
const summaryPromptFormat = `
あなたはチーム開発の朝会議事録を作成するアシスタントです。
現在時刻: %s

以下の文字起こし結果から、Slack投稿用の簡潔な議事録を作成してください。

要件:
- 内容を箇条書きで記載し、各項目は完結した文章にする
- 箇条書きの間は空行を入れずに詰める
- タスク関連の内容は除外（別途Issue化するため）
- 決定事項、進捗報告、問題点、方針変更などを具体的に記載
- 見出しだけでなく、状況や結果も含めて記述する
- 日本語で出力

フォーマット例:
- メンバーAの進捗状況は順調で、APIの実装が80%%完了しています。
- 新機能Xの設計方針について議論し、マイクロサービス化の方向で合意しました。
- チーム体制の変更により、来月からフロントエンド担当者が1名増員されます。
- パフォーマンス問題が発生しており、データベースクエリの最適化が必要です。

文字起こし結果:
%s
`

// extractPromptFormat takes the current time and the transcript.
const extractPromptFormat = `
あなたはチーム開発の朝会からタスクを抽出するアシスタントです。
現在時刻: %s

以下の文字起こし結果から、Issue化すべきタスクを抽出してください。

抽出条件:
- まだ完了していないタスク
- 具体的な作業内容が含まれているもの
- 依頼事項や新規作業

各タスクについて以下の形式でJSONで出力してください:
[
  {
    "title": "【{deadline}】{task_title}",
    "body": "## 背景\n- {background_info_if_available}\n\n## 担当者\n- {assignees_if_mentioned}\n\n## やること\n- {task_details}",
    "deadline": "{deadline_date}",
    "assignees": ["{github_username1}", "{github_username2}"],
    "labels": ["{label1}", "{label2}"]
  }
]

タイトルの締切形式:
- チーム内決定: "【とりあえず{日付}まで】"
- 外部依頼/必須: "【{日付}まで】"
- 相対日付は絶対日付に変換（今日・明日・来週金曜などは現在時刻から計算）

Issue本文の作成ルール:
- 背景: そのタスクの背景が読み取れた場合のみ記載、不明な場合は空欄
- 担当者: 担当者について話していた場合は名前のみ記載、不明な場合は空欄
- やること: そのタスクでやるとされていたことを具体的に記載

追加フィールドの設定:
- assignees: GitHubのユーザー名が特定できる場合は配列で記載、不明な場合は空配列
- labels: 特別な指示がない限り空配列を指定してください

文字起こし結果:
%s
`

// buildSystemPrompt appends the custom instructions, which take
// precedence over the base prompt when the two conflict.
func buildSystemPrompt(base, custom string) string {
	if custom == "" {
		return base
	}
	return fmt.Sprintf(`%s

ただし、今回のこのタスクに関しては、追加の指示がありますので、以下に提示します。上記の指示と矛盾する場合は、以下の追加指示を優先してください。

%s`, base, custom)
}

// loadCustomInstructions reads the custom instructions file.
// A missing or unreadable file means no extra instructions.
func loadCustomInstructions(path string) string {
	if path == "" {
		return ""
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(data))
}
