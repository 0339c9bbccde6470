package title

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParse(t *testing.T) {
	t.Run("Should extract title, assignees and labels", func(t *testing.T) {
		result := Parse("【5/23 まで】佐藤さんからの問い合わせ対応 @dev-tanaka @sato-gh <[問い合わせ対応]> <[重要度高]>")

		assert.Equal(t, "【5/23 まで】佐藤さんからの問い合わせ対応", result.Title)
		assert.Equal(t, []string{"dev-tanaka", "sato-gh"}, result.Assignees)
		assert.Equal(t, []string{"問い合わせ対応", "重要度高"}, result.Labels)
	})

	t.Run("Should not care where the markers are placed", func(t *testing.T) {
		result := Parse("@dev-tanaka 【5/23 まで】佐藤さんからの問い合わせ対応 <[問い合わせ対応]> @sato-gh <[重要度高]>")

		assert.Equal(t, "【5/23 まで】佐藤さんからの問い合わせ対応", result.Title)
		assert.Equal(t, []string{"dev-tanaka", "sato-gh"}, result.Assignees)
		assert.Equal(t, []string{"問い合わせ対応", "重要度高"}, result.Labels)
	})

	t.Run("Should pass through a title without markers", func(t *testing.T) {
		result := Parse("【5/23 まで】佐藤さんからの問い合わせ対応")

		assert.Equal(t, "【5/23 まで】佐藤さんからの問い合わせ対応", result.Title)
		assert.Empty(t, result.Assignees)
		assert.Empty(t, result.Labels)
	})

	t.Run("Should handle assignees only", func(t *testing.T) {
		result := Parse("【5/23 まで】佐藤さんからの問い合わせ対応 @dev-tanaka @sato-gh")

		assert.Equal(t, "【5/23 まで】佐藤さんからの問い合わせ対応", result.Title)
		assert.Equal(t, []string{"dev-tanaka", "sato-gh"}, result.Assignees)
		assert.Empty(t, result.Labels)
	})

	t.Run("Should handle labels only", func(t *testing.T) {
		result := Parse("【5/23 まで】佐藤さんからの問い合わせ対応 <[問い合わせ対応]> <[重要度高]>")

		assert.Equal(t, "【5/23 まで】佐藤さんからの問い合わせ対応", result.Title)
		assert.Empty(t, result.Assignees)
		assert.Equal(t, []string{"問い合わせ対応", "重要度高"}, result.Labels)
	})

	t.Run("Should keep hyphens inside usernames", func(t *testing.T) {
		result := Parse("タスク @user-name @test-user-123")

		assert.Equal(t, "タスク", result.Title)
		assert.Equal(t, []string{"user-name", "test-user-123"}, result.Assignees)
		assert.Empty(t, result.Labels)
	})

	t.Run("Should collapse extra whitespace around markers", func(t *testing.T) {
		result := Parse("  タスク   @user1   <[label1]>   @user2   <[label2]>  ")

		assert.Equal(t, "タスク", result.Title)
		assert.Equal(t, []string{"user1", "user2"}, result.Assignees)
		assert.Equal(t, []string{"label1", "label2"}, result.Labels)
	})

	t.Run("Should strip empty label markers without collecting them", func(t *testing.T) {
		result := Parse("タスク @user1 <[]> <[valid-label]>")

		assert.Equal(t, "タスク", result.Title)
		assert.Equal(t, []string{"user1"}, result.Assignees)
		assert.Equal(t, []string{"valid-label"}, result.Labels)
	})

	t.Run("Should leave ordinary brackets in the title alone", func(t *testing.T) {
		result := Parse("【5/23】API [v2] の実装 @dev <[新機能]>")

		assert.Equal(t, "【5/23】API [v2] の実装", result.Title)
		assert.Equal(t, []string{"dev"}, result.Assignees)
		assert.Equal(t, []string{"新機能"}, result.Labels)
	})

	t.Run("Should return empty results for the empty string", func(t *testing.T) {
		result := Parse("")

		assert.Equal(t, "", result.Title)
		assert.Empty(t, result.Assignees)
		assert.Empty(t, result.Labels)
	})

	t.Run("Should keep a bare at-sign in the title", func(t *testing.T) {
		result := Parse("障害対応 @ のフォローアップ")

		assert.Equal(t, "障害対応 @ のフォローアップ", result.Title)
		assert.Empty(t, result.Assignees)
	})

	t.Run("Should ignore a label marker missing its closing bracket", func(t *testing.T) {
		result := Parse("リリース準備 <[wip @ops")

		assert.Equal(t, "リリース準備 <[wip", result.Title)
		assert.Equal(t, []string{"ops"}, result.Assignees)
		assert.Empty(t, result.Labels)
	})

	t.Run("Should keep duplicate markers as separate entries", func(t *testing.T) {
		result := Parse("レビュー依頼 @dev@dev <[bug]><[bug]>")

		assert.Equal(t, "レビュー依頼", result.Title)
		assert.Equal(t, []string{"dev", "dev"}, result.Assignees)
		assert.Equal(t, []string{"bug", "bug"}, result.Labels)
	})

	t.Run("Should be stable when re-parsing its own output", func(t *testing.T) {
		first := Parse("タスク整理 @user1 <[label1]> の続き @user2")
		second := Parse(first.Title)

		assert.Equal(t, first.Title, second.Title)
		assert.Empty(t, second.Assignees)
		assert.Empty(t, second.Labels)
	})
}
