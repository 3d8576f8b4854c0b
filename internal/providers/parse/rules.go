package parse

import "regexp"

type rule struct {
	label string
	re    *regexp.Regexp
}

// Rule order is match order: slices of labels come out in table order, and
// the first matching intent/subtext rule wins.
var themeRules = []rule{
	{"work-life balance", regexp.MustCompile(`\b(work(load|ing)?|job|jobs|deadline\w*|boss|office|overtime|meeting\w*|career|shift\w*|colleague\w*)\b`)},
	{"relationships", regexp.MustCompile(`\b(friend\w*|family|partner|mom|dad|mother|father|sister|brother|girlfriend|boyfriend|wife|husband|date|dating|lonely|breakup)\b`)},
	{"health & wellness", regexp.MustCompile(`\b(sleep\w*|slept|gym|workout\w*|exercise\w*|run(ning)?|sick|doctor|headache\w*|migraine\w*|diet|eating|meditat\w*)\b`)},
	{"money & finances", regexp.MustCompile(`\b(money|rent|budget\w*|salary|paycheck|debt\w*|bill|bills|saving\w*|spend\w*|broke)\b`)},
	{"self-growth", regexp.MustCompile(`\b(learn\w*|goal\w*|habit\w*|improv\w*|progress|journal\w*|read(ing)?|course|practice|practis\w*)\b`)},
	{"creative pursuits", regexp.MustCompile(`\b(paint\w*|draw(ing)?|writ(e|ing)|music|song\w*|guitar|piano|photo\w*|craft\w*)\b`)},
}

var vibeRules = []rule{
	{"anxious", regexp.MustCompile(`\b(stress\w*|anxious|anxiety|worr\w*|nervous|overwhelm\w*|panic\w*|pressure|dread\w*)\b`)},
	{"excited", regexp.MustCompile(`\b(excit\w*|thrill\w*|amazing|awesome|stoked|pumped)\b|can'?t wait`)},
	{"sad", regexp.MustCompile(`\b(sad|down|depress\w*|cry(ing)?|cried|miserable|lonely|heartbroken)\b`)},
	{"frustrated", regexp.MustCompile(`\b(frustrat\w*|annoy\w*|angry|anger|mad|irritat\w*|fed up)\b`)},
	{"exhausted", regexp.MustCompile(`\b(exhaust\w*|drained|tired|burn(ed|t)? ?out|sleepy)\b`)},
	{"calm", regexp.MustCompile(`\b(calm|peaceful|relax\w*|content|grateful|thankful|serene)\b`)},
}

var traitRules = []rule{
	{"organized", regexp.MustCompile(`\b(plan\w*|schedul\w*|list\w*|organiz\w*|checklist)\b`)},
	{"introspective", regexp.MustCompile(`\b(feel\w*|felt|think(ing)?|thought\w*|wonder\w*|realiz\w*|reflect\w*)\b`)},
	{"ambitious", regexp.MustCompile(`\b(goal\w*|achiev\w*|push(ed|ing)?|ambiti\w*|hustl\w*)\b`)},
	{"caring", regexp.MustCompile(`\b(help\w*|care(d|s)?|caring|support\w*|friend\w*|family)\b`)},
}

var bucketRules = []rule{
	{"goal", regexp.MustCompile(`\b(want to|going to|plan(ning)? to|goal\w*|aim(ing)? to)\b`)},
	{"habit", regexp.MustCompile(`\b(every (day|morning|night|week)|always|usually|again|routine\w*|daily)\b`)},
	{"hobby", regexp.MustCompile(`\b(play(ed|ing)?|game\w*|paint\w*|music|hik(e|ing)|bak(e|ing)|garden\w*)\b`)},
	{"value", regexp.MustCompile(`\b(believe\w*|important|matters?|value\w*|principle\w*)\b`)},
}

var intentRules = []rule{
	{"set an intention", regexp.MustCompile(`\b(want to|going to|plan(ning)? to|will|tomorrow|next (week|month))\b`)},
	{"vent and release", regexp.MustCompile(`\b(hate|sick of|fed up|can'?t stand|so (annoying|unfair))\b`)},
	{"seek clarity", regexp.MustCompile(`\?|\b(not sure|confus\w*|don'?t know|wonder\w*)\b`)},
}

var subtextRules = []rule{
	{"needs reassurance", regexp.MustCompile(`\b(stress\w*|anxious|worr\w*|overwhelm\w*|scared|afraid)\b`)},
	{"proud of progress", regexp.MustCompile(`\b(proud|finally|accomplish\w*|finish(ed)?|nailed)\b`)},
	{"running on empty", regexp.MustCompile(`\b(exhaust\w*|drained|tired|burn(ed|t)? ?out)\b`)},
}
