package decisiontree

// Version is the release version of the skill.
const Version = "0.4.0"
