package engine

import "github.com/tmorvan/netherhall/types"

// handlerFunc receives the parsed command plus the already-resolved object
// and target IDs (empty when the command carried none).
type handlerFunc func(e *Engine, cmd types.ParsedCommand, objID, targetID string) types.ActionResult

// verbSpec is the routing metadata for one canonical verb. The router
// enforces the required roles before the handler runs, so handlers never
// see a command missing a role they declared.
type verbSpec struct {
	handler        handlerFunc
	needsObject    bool
	needsTarget    bool
	needsDirection bool
	ignoreObject   bool // skip resolution; handler interprets phrases itself
	rawTarget      bool // target is a free phrase (a topic), not an object
	objectPrompt   string
	targetPrompt   string
}

func registry() map[string]verbSpec {
	return map[string]verbSpec{
		// Movement.
		"go":        {handler: handleGo, needsDirection: true},
		"enter":     {handler: handleEnter},
		"leave":     {handler: handleLeave},
		"climb":     {handler: handleClimb},
		"board":     {handler: handleBoard, needsObject: true, objectPrompt: "What do you want to board?"},
		"disembark": {handler: handleDisembark},
		"jump":      {handler: handleJump},

		// Senses and observation.
		"look":    {handler: handleLook},
		"examine": {handler: handleExamine, needsObject: true, objectPrompt: "What do you want to examine?"},
		"read":    {handler: handleRead, needsObject: true, objectPrompt: "What do you want to read?"},
		"search":  {handler: handleSearch, needsObject: true, objectPrompt: "What do you want to search?"},
		"listen":  {handler: handleListen},
		"smell":   {handler: handleSmell},

		// Housekeeping.
		"inventory": {handler: handleInventory},
		"wait":      {handler: handleWait},
		"score":     {handler: handleScore},
		"diagnose":  {handler: handleDiagnose},

		// Item manipulation.
		"take": {handler: handleTake, needsObject: true, objectPrompt: "What do you want to take?"},
		"drop": {handler: handleDrop, needsObject: true, objectPrompt: "What do you want to drop?"},
		"put": {handler: handlePut, needsObject: true, needsTarget: true,
			objectPrompt: "What do you want to put somewhere?", targetPrompt: "Where do you want to put it?"},
		"give": {handler: handleGive, needsObject: true, needsTarget: true,
			objectPrompt: "What do you want to give?", targetPrompt: "Who do you want to give it to?"},
		"show": {handler: handleGive, needsObject: true, needsTarget: true,
			objectPrompt: "What do you want to show?", targetPrompt: "Who do you want to show it to?"},
		"throw": {handler: handleThrow, needsObject: true, objectPrompt: "What do you want to throw?"},
		"eat":   {handler: handleEat, needsObject: true, objectPrompt: "What do you want to eat?"},
		"drink": {handler: handleDrink, needsObject: true, objectPrompt: "What do you want to drink?"},

		// Doors, locks, and other stateful fixtures.
		"open":  {handler: handleOpen, needsObject: true, objectPrompt: "What do you want to open?"},
		"close": {handler: handleClose, needsObject: true, objectPrompt: "What do you want to close?"},
		"lock": {handler: handleLock, needsObject: true, needsTarget: true,
			objectPrompt: "What do you want to lock?", targetPrompt: "What do you want to lock it with?"},
		"unlock": {handler: handleUnlock, needsObject: true, needsTarget: true,
			objectPrompt: "What do you want to unlock?", targetPrompt: "What do you want to unlock it with?"},
		"turn": {handler: handleTurn, needsObject: true, objectPrompt: "What do you want to turn?"},
		"push": {handler: handlePush, needsObject: true, objectPrompt: "What do you want to push?"},
		"pull": {handler: handlePull, needsObject: true, objectPrompt: "What do you want to pull?"},
		"tie": {handler: handleTie, needsObject: true, needsTarget: true,
			objectPrompt: "What do you want to tie?", targetPrompt: "What do you want to tie it to?"},
		"untie": {handler: handleUntie, needsObject: true, objectPrompt: "What do you want to untie?"},

		// Liquids and transformation.
		"fill": {handler: handleFill, needsObject: true, objectPrompt: "What do you want to fill?"},
		"pour": {handler: handlePour, needsObject: true, objectPrompt: "What do you want to pour out?"},
		"burn": {handler: handleBurn, needsObject: true, objectPrompt: "What do you want to burn?"},
		"cut": {handler: handleCut, needsObject: true, needsTarget: true,
			objectPrompt: "What do you want to cut?", targetPrompt: "What do you want to cut it with?"},
		"dig":     {handler: handleDig},
		"inflate": {handler: handleInflate, needsObject: true, objectPrompt: "What do you want to inflate?"},
		"deflate": {handler: handleDeflate, needsObject: true, objectPrompt: "What do you want to deflate?"},

		// Gestural verbs.
		"wave":    {handler: handleWave, needsObject: true, objectPrompt: "What do you want to wave?"},
		"rub":     {handler: handleRub, needsObject: true, objectPrompt: "What do you want to rub?"},
		"shake":   {handler: handleShake, needsObject: true, objectPrompt: "What do you want to shake?"},
		"squeeze": {handler: handleSqueeze, needsObject: true, objectPrompt: "What do you want to squeeze?"},
		"touch":   {handler: handleTouch, needsObject: true, objectPrompt: "What do you want to touch?"},
		"knock":   {handler: handleKnock, needsObject: true, objectPrompt: "What do you want to knock on?"},

		// Combat.
		"attack": {handler: handleAttack, needsObject: true, objectPrompt: "What do you want to attack?"},

		// Social.
		"talk": {handler: handleTalk, needsObject: true, objectPrompt: "Who do you want to talk to?"},
		"ask": {handler: handleAsk, needsObject: true, rawTarget: true,
			objectPrompt: "Who do you want to ask?"},
		"pray": {handler: handlePray},
		"sing": {handler: handleSing},
		"yell": {handler: handleYell},

		// Session control. These interpret their phrase themselves.
		"save":       {handler: handleSave, ignoreObject: true},
		"restore":    {handler: handleRestore, ignoreObject: true},
		"restart":    {handler: handleRestart, ignoreObject: true},
		"quit":       {handler: handleQuit, ignoreObject: true},
		"verbose":    {handler: handleVerbose, ignoreObject: true},
		"brief":      {handler: handleBrief, ignoreObject: true},
		"superbrief": {handler: handleSuperbrief, ignoreObject: true},

		// Recognized but unimplemented; nil handler reports not-yet-available.
		"swim":  {},
		"buy":   {},
		"sleep": {},
		"dance": {},
	}
}
