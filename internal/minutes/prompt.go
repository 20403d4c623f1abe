package minutes

import "fmt"

// systemPrompt frames the model as a minute-taking specialist.
const systemPrompt = "あなたは会議の議事録を作成する専門家です。文字起こしテキストから構造化された議事録を生成してください。"

// promptTemplate embeds the transcript verbatim and names the seven required
// output sections. The section list is an instruction to the model, not a
// locally enforced invariant: the returned document is never validated.
const promptTemplate = `以下の文字起こしテキストから、構造化された議事録をMarkdown形式で生成してください。

【文字起こしテキスト】
%s

【議事録の形式】
以下の形式で議事録を作成してください：

# 議事録

## 日時
[会議の日時（文字起こしから推測）]

## 参加者
[参加者の名前（文字起こしから推測）]

## 議題
[主な議題やトピック]

## 議論内容
[主要な議論のポイント]

## 決定事項
[決定した事項]

## アクションアイテム
[今後のアクションアイテムと担当者]

## その他
[その他の重要な情報]
`

func buildPrompt(transcript string) string {
	return fmt.Sprintf(promptTemplate, transcript)
}
