package chat

// Reply and prompt texts, in the voice of the original bot.
const (
	replyGreeting = "🍴 Bot for planning shared lunches!\n" +
		"Create a group: /create\n" +
		"Join a group: /join\n" +
		"Add an event: /addevent\n" +
		"Upcoming events: /current\n" +
		"History: /history"

	replyUsage = "I didn't catch that. Send /start for the list of commands."

	promptGroupName     = "Enter the group name:"
	promptGroupPassword = "Enter the group password:"
	promptGroupChoice   = "Choose a group (reply with a number or the name):"
	promptEventDate     = "Enter the date (e.g. 2025-10-10):"
	promptEventStart    = "Enter the start time (e.g. 13:00):"
	promptEventEnd      = "Enter the end time (e.g. 14:00):"
	promptEventLocation = "Enter the location:"

	replyEmptyName     = "❌ The name cannot be empty! Try again."
	replyEmptyPassword = "❌ The password cannot be empty! Try again."
	replyEmptyLocation = "❌ The location cannot be empty! Try again."
	replyBadDate       = "❌ Invalid date format! Try again."
	replyBadTime       = "❌ Invalid time format! Try again."
	replyBadChoice     = "❌ Pick one of the listed groups!"

	replyGroupNotFound = "❌ Group not found!"
	replyWrongPassword = "❌ Wrong password!"
	replyNoGroups      = "❌ You are not a member of any group! Create one with /create or join with /join."
	replyFailure       = "❌ Something went wrong, please try again later."

	replyEventAdded = "✅ Event added!"

	headerCurrent = "🍽️ Upcoming events (2 days):"
	headerHistory = "📜 History of all events:"

	replyNoCurrentEvents = "🤷 No events in the next 2 days."
	replyNoHistoryEvents = "🤷 No events yet."
)
