package usecase

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"messenger-api/apperror"
	"messenger-api/dto/req"
	"messenger-api/dto/res"
	"messenger-api/entity"
	"messenger-api/enum"
)

func (f *fixture) sendText(t *testing.T, chatID, senderID, text string) res.MessageResponse {
	t.Helper()

	message, err := f.messages.CreateMessage(testCtx(), senderID, &req.CreateMessageRequest{
		ChatID: chatID,
		Text:   strPtr(text),
	})
	require.NoError(t, err)
	return message
}

func TestCreateTextMessage(t *testing.T) {
	f := newFixture(t)
	ada := f.seedUser(t, "Ada", "ada@example.com")
	bob := f.seedUser(t, "Bob", "bob@example.com")
	chat := f.startPrivateChat(t, ada.ID, bob.ID)

	message := f.sendText(t, chat.ID, ada.ID, "hello bob")
	assert.Equal(t, enum.MessageTypeText, message.Type)
	require.NotNil(t, message.Text)
	assert.Equal(t, "hello bob", *message.Text)
	assert.Equal(t, ada.ID, message.Sender.ID)
	assert.False(t, message.IsEdited)
}

func TestCreateMediaMessage(t *testing.T) {
	f := newFixture(t)
	ada := f.seedUser(t, "Ada", "ada@example.com")
	bob := f.seedUser(t, "Bob", "bob@example.com")
	chat := f.startPrivateChat(t, ada.ID, bob.ID)

	message, err := f.messages.CreateMessage(testCtx(), ada.ID, &req.CreateMessageRequest{
		ChatID:   chat.ID,
		Type:     enum.MessageTypeImage,
		MediaURL: strPtr("https://cdn.example.com/cat.png"),
	})
	require.NoError(t, err)
	assert.Equal(t, enum.MessageTypeImage, message.Type)
	require.NotNil(t, message.MediaURL)
	assert.Nil(t, message.Text)
}

func TestMessageContentShape(t *testing.T) {
	f := newFixture(t)
	ada := f.seedUser(t, "Ada", "ada@example.com")
	bob := f.seedUser(t, "Bob", "bob@example.com")
	chat := f.startPrivateChat(t, ada.ID, bob.ID)

	cases := []struct {
		name    string
		request *req.CreateMessageRequest
	}{
		{"text without body", &req.CreateMessageRequest{ChatID: chat.ID}},
		{"text with media url", &req.CreateMessageRequest{
			ChatID:   chat.ID,
			Text:     strPtr("hi"),
			MediaURL: strPtr("https://cdn.example.com/cat.png"),
		}},
		{"image without media url", &req.CreateMessageRequest{
			ChatID: chat.ID,
			Type:   enum.MessageTypeImage,
			Text:   strPtr("hi"),
		}},
		{"image with text body", &req.CreateMessageRequest{
			ChatID:   chat.ID,
			Type:     enum.MessageTypeImage,
			Text:     strPtr("hi"),
			MediaURL: strPtr("https://cdn.example.com/cat.png"),
		}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := f.messages.CreateMessage(testCtx(), ada.ID, tc.request)
			assert.True(t, apperror.IsKind(err, apperror.KindValidation))
		})
	}
}

func TestCreateMessageByOutsider(t *testing.T) {
	f := newFixture(t)
	ada := f.seedUser(t, "Ada", "ada@example.com")
	bob := f.seedUser(t, "Bob", "bob@example.com")
	eve := f.seedUser(t, "Eve", "eve@example.com")
	chat := f.startPrivateChat(t, ada.ID, bob.ID)

	_, err := f.messages.CreateMessage(testCtx(), eve.ID, &req.CreateMessageRequest{
		ChatID: chat.ID,
		Text:   strPtr("let me in"),
	})
	assert.True(t, apperror.IsKind(err, apperror.KindNotFound))
}

func TestReplyToMessage(t *testing.T) {
	f := newFixture(t)
	ada := f.seedUser(t, "Ada", "ada@example.com")
	bob := f.seedUser(t, "Bob", "bob@example.com")
	chat := f.startPrivateChat(t, ada.ID, bob.ID)

	original := f.sendText(t, chat.ID, ada.ID, "hello")

	reply, err := f.messages.CreateMessage(testCtx(), bob.ID, &req.CreateMessageRequest{
		ChatID:           chat.ID,
		Text:             strPtr("hi back"),
		ReplyToMessageID: &original.ID,
	})
	require.NoError(t, err)
	require.NotNil(t, reply.ReplyToMessage)
	assert.Equal(t, original.ID, reply.ReplyToMessage.ID)
	assert.Equal(t, ada.ID, reply.ReplyToMessage.Sender.ID)
}

func TestReplyToDeletedMessage(t *testing.T) {
	f := newFixture(t)
	ada := f.seedUser(t, "Ada", "ada@example.com")
	bob := f.seedUser(t, "Bob", "bob@example.com")
	chat := f.startPrivateChat(t, ada.ID, bob.ID)

	original := f.sendText(t, chat.ID, ada.ID, "hello")
	require.NoError(t, f.messages.DeleteMessage(testCtx(), original.ID, ada.ID))

	_, err := f.messages.CreateMessage(testCtx(), bob.ID, &req.CreateMessageRequest{
		ChatID:           chat.ID,
		Text:             strPtr("hi back"),
		ReplyToMessageID: &original.ID,
	})
	assert.True(t, apperror.IsKind(err, apperror.KindValidation))
}

func TestUpdateMessageBySender(t *testing.T) {
	f := newFixture(t)
	ada := f.seedUser(t, "Ada", "ada@example.com")
	bob := f.seedUser(t, "Bob", "bob@example.com")
	chat := f.startPrivateChat(t, ada.ID, bob.ID)

	message := f.sendText(t, chat.ID, ada.ID, "helo")

	updated, err := f.messages.UpdateMessage(testCtx(), message.ID, ada.ID, &req.UpdateMessageRequest{
		Text: strPtr("hello"),
	})
	require.NoError(t, err)
	require.NotNil(t, updated.Text)
	assert.Equal(t, "hello", *updated.Text)
	assert.True(t, updated.IsEdited)
}

func TestUpdateMessageByOtherMember(t *testing.T) {
	f := newFixture(t)
	ada := f.seedUser(t, "Ada", "ada@example.com")
	bob := f.seedUser(t, "Bob", "bob@example.com")
	chat := f.startPrivateChat(t, ada.ID, bob.ID)

	message := f.sendText(t, chat.ID, ada.ID, "hello")

	// bob can read the message but not edit it, and the error does not
	// reveal which of the two is the case
	_, err := f.messages.UpdateMessage(testCtx(), message.ID, bob.ID, &req.UpdateMessageRequest{
		Text: strPtr("hijacked"),
	})
	assert.True(t, apperror.IsKind(err, apperror.KindNotFound))
}

func TestDeleteMessageBySenderHidesIt(t *testing.T) {
	f := newFixture(t)
	ada := f.seedUser(t, "Ada", "ada@example.com")
	bob := f.seedUser(t, "Bob", "bob@example.com")
	chat := f.startPrivateChat(t, ada.ID, bob.ID)

	message := f.sendText(t, chat.ID, ada.ID, "hello")
	require.NoError(t, f.messages.DeleteMessage(testCtx(), message.ID, ada.ID))

	// hidden from reads for everyone, including the sender
	_, err := f.messages.GetMessage(testCtx(), message.ID, ada.ID)
	assert.True(t, apperror.IsKind(err, apperror.KindNotFound))
	_, err = f.messages.GetMessage(testCtx(), message.ID, bob.ID)
	assert.True(t, apperror.IsKind(err, apperror.KindNotFound))

	// row survives as a soft-deleted tombstone
	var stored entity.Message
	require.NoError(t, f.db.Where("id = ?", message.ID).First(&stored).Error)
	assert.True(t, stored.IsDeleted)

	page, err := f.messages.ListMessages(testCtx(), ada.ID, &req.MessageFilterRequest{ChatID: chat.ID})
	require.NoError(t, err)
	assert.EqualValues(t, 0, page.Total)
}

func TestDeleteMessageByOtherMember(t *testing.T) {
	f := newFixture(t)
	ada := f.seedUser(t, "Ada", "ada@example.com")
	bob := f.seedUser(t, "Bob", "bob@example.com")
	chat := f.startPrivateChat(t, ada.ID, bob.ID)

	message := f.sendText(t, chat.ID, ada.ID, "hello")

	err := f.messages.DeleteMessage(testCtx(), message.ID, bob.ID)
	assert.True(t, apperror.IsKind(err, apperror.KindNotFound))
}

func TestListMessagesNewestFirst(t *testing.T) {
	f := newFixture(t)
	ada := f.seedUser(t, "Ada", "ada@example.com")
	bob := f.seedUser(t, "Bob", "bob@example.com")
	chat := f.startPrivateChat(t, ada.ID, bob.ID)

	f.sendText(t, chat.ID, ada.ID, "one")
	f.sendText(t, chat.ID, bob.ID, "two")
	third := f.sendText(t, chat.ID, ada.ID, "three")

	page, err := f.messages.ListMessages(testCtx(), ada.ID, &req.MessageFilterRequest{ChatID: chat.ID})
	require.NoError(t, err)
	assert.EqualValues(t, 3, page.Total)
	require.Len(t, page.Data, 3)
	assert.Equal(t, third.ID, page.Data[0].ID)
}

func TestListMessagesByOutsider(t *testing.T) {
	f := newFixture(t)
	ada := f.seedUser(t, "Ada", "ada@example.com")
	bob := f.seedUser(t, "Bob", "bob@example.com")
	eve := f.seedUser(t, "Eve", "eve@example.com")
	chat := f.startPrivateChat(t, ada.ID, bob.ID)

	f.sendText(t, chat.ID, ada.ID, "private stuff")

	_, err := f.messages.ListMessages(testCtx(), eve.ID, &req.MessageFilterRequest{ChatID: chat.ID})
	assert.True(t, apperror.IsKind(err, apperror.KindNotFound))
}

func TestAddReactionIsIdempotent(t *testing.T) {
	f := newFixture(t)
	ada := f.seedUser(t, "Ada", "ada@example.com")
	bob := f.seedUser(t, "Bob", "bob@example.com")
	chat := f.startPrivateChat(t, ada.ID, bob.ID)

	message := f.sendText(t, chat.ID, ada.ID, "hello")

	first, err := f.messages.AddReaction(testCtx(), message.ID, bob.ID, &req.ReactionRequest{Emoji: "👍"})
	require.NoError(t, err)
	second, err := f.messages.AddReaction(testCtx(), message.ID, bob.ID, &req.ReactionRequest{Emoji: "👍"})
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)

	var count int64
	require.NoError(t, f.db.Model(&entity.MessageReaction{}).Where("message_id = ?", message.ID).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestDifferentEmojisCoexist(t *testing.T) {
	f := newFixture(t)
	ada := f.seedUser(t, "Ada", "ada@example.com")
	bob := f.seedUser(t, "Bob", "bob@example.com")
	chat := f.startPrivateChat(t, ada.ID, bob.ID)

	message := f.sendText(t, chat.ID, ada.ID, "hello")

	_, err := f.messages.AddReaction(testCtx(), message.ID, bob.ID, &req.ReactionRequest{Emoji: "👍"})
	require.NoError(t, err)
	_, err = f.messages.AddReaction(testCtx(), message.ID, bob.ID, &req.ReactionRequest{Emoji: "🎉"})
	require.NoError(t, err)
	_, err = f.messages.AddReaction(testCtx(), message.ID, ada.ID, &req.ReactionRequest{Emoji: "👍"})
	require.NoError(t, err)

	reactions, err := f.messages.ListReactions(testCtx(), message.ID, ada.ID)
	require.NoError(t, err)
	assert.Len(t, reactions, 3)
}

func TestReactionByOutsider(t *testing.T) {
	f := newFixture(t)
	ada := f.seedUser(t, "Ada", "ada@example.com")
	bob := f.seedUser(t, "Bob", "bob@example.com")
	eve := f.seedUser(t, "Eve", "eve@example.com")
	chat := f.startPrivateChat(t, ada.ID, bob.ID)

	message := f.sendText(t, chat.ID, ada.ID, "hello")

	_, err := f.messages.AddReaction(testCtx(), message.ID, eve.ID, &req.ReactionRequest{Emoji: "👀"})
	assert.True(t, apperror.IsKind(err, apperror.KindNotFound))
}

func TestRemoveReaction(t *testing.T) {
	f := newFixture(t)
	ada := f.seedUser(t, "Ada", "ada@example.com")
	bob := f.seedUser(t, "Bob", "bob@example.com")
	chat := f.startPrivateChat(t, ada.ID, bob.ID)

	message := f.sendText(t, chat.ID, ada.ID, "hello")
	_, err := f.messages.AddReaction(testCtx(), message.ID, bob.ID, &req.ReactionRequest{Emoji: "👍"})
	require.NoError(t, err)

	require.NoError(t, f.messages.RemoveReaction(testCtx(), message.ID, bob.ID, "👍"))

	// removing again is a quiet no-op
	require.NoError(t, f.messages.RemoveReaction(testCtx(), message.ID, bob.ID, "👍"))

	reactions, err := f.messages.ListReactions(testCtx(), message.ID, ada.ID)
	require.NoError(t, err)
	assert.Empty(t, reactions)
}

func TestMessageCreateBumpsChatRecency(t *testing.T) {
	f := newFixture(t)
	ada := f.seedUser(t, "Ada", "ada@example.com")
	bob := f.seedUser(t, "Bob", "bob@example.com")
	chat := f.startPrivateChat(t, ada.ID, bob.ID)

	var before entity.Chat
	require.NoError(t, f.db.Where("id = ?", chat.ID).First(&before).Error)

	time.Sleep(10 * time.Millisecond)
	f.sendText(t, chat.ID, ada.ID, "hello")

	var after entity.Chat
	require.NoError(t, f.db.Where("id = ?", chat.ID).First(&after).Error)
	assert.True(t, after.UpdatedAt.After(before.UpdatedAt))
}
