package notification_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ayursutra/ayursutra/internal/notification"
)

func add(c *notification.Center, id string) {
	c.Add(notification.Notification{
		ID:      id,
		Type:    notification.TypeInfo,
		Title:   "Title " + id,
		Message: "Message " + id,
	})
}

func TestAddInsertsNewestFirst(t *testing.T) {
	c := notification.NewCenter()
	add(c, "a")
	add(c, "b")
	add(c, "c")

	items := c.List()
	require.Len(t, items, 3)
	require.Equal(t, "c", items[0].ID)
	require.Equal(t, "a", items[2].ID)
	require.Equal(t, 3, c.UnreadCount())
}

func TestFeedCapsAtFiftyDroppingOldest(t *testing.T) {
	c := notification.NewCenter()
	for i := 0; i < 60; i++ {
		add(c, fmt.Sprintf("n-%02d", i))
	}

	items := c.List()
	require.Len(t, items, 50)
	require.Equal(t, "n-59", items[0].ID)
	require.Equal(t, "n-10", items[49].ID)
}

func TestAddReplacesDuplicateID(t *testing.T) {
	c := notification.NewCenter()
	add(c, "a")
	add(c, "b")
	add(c, "a")

	items := c.List()
	require.Len(t, items, 2)
	require.Equal(t, "a", items[0].ID)
	require.Equal(t, "b", items[1].ID)
	require.Equal(t, 2, c.UnreadCount())
}

func TestMarkAsReadDecrementsWithFloorZero(t *testing.T) {
	c := notification.NewCenter()
	add(c, "a")
	add(c, "b")

	c.MarkAsRead("a")
	require.Equal(t, 1, c.UnreadCount())

	// Repeat reads do not double-count.
	c.MarkAsRead("a")
	require.Equal(t, 1, c.UnreadCount())

	c.MarkAsRead("missing")
	require.Equal(t, 1, c.UnreadCount())

	c.MarkAsRead("b")
	require.Equal(t, 0, c.UnreadCount())
	c.MarkAsRead("b")
	require.Equal(t, 0, c.UnreadCount())
}

func TestMarkAllAsReadZeroesCounter(t *testing.T) {
	c := notification.NewCenter()
	for i := 0; i < 5; i++ {
		add(c, fmt.Sprintf("n-%d", i))
	}

	c.MarkAllAsRead()
	require.Equal(t, 0, c.UnreadCount())
	for _, n := range c.List() {
		require.True(t, n.Read)
	}
}

func TestClearRemovesEntryAndAdjustsUnread(t *testing.T) {
	c := notification.NewCenter()
	add(c, "a")
	add(c, "b")
	c.MarkAsRead("a")

	c.Clear("a")
	require.Len(t, c.List(), 1)
	require.Equal(t, 1, c.UnreadCount())

	c.Clear("b")
	require.Empty(t, c.List())
	require.Equal(t, 0, c.UnreadCount())
}

func TestClearAllResetsFeed(t *testing.T) {
	c := notification.NewCenter()
	add(c, "a")
	add(c, "b")

	c.ClearAll()
	require.Empty(t, c.List())
	require.Equal(t, 0, c.UnreadCount())
}
