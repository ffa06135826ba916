package session

// Screen text shown between phases.
var (
	welcomeText = []string{
		"Welcome to this experiment!",
		"",
		"[Press SPACEBAR to continue]",
	}

	encodingInstructions = []string{
		"In this task, you will view sequences of words arranged in sets of three.",
		"Each word will appear on the screen individually and the sets will be separated by a fixation cross.",
		"",
		"[Press the SPACEBAR to begin]",
	}

	encodingDone = []string{
		"Task 1 is completed!",
		"Please notify the researcher.",
		"",
		"[Press SPACEBAR to continue]",
	}

	distractionInstructions = []string{
		"This is a simple arithmetic task.",
		"You should type your answer out and press ENTER after finished.",
		"",
		"[Press the SPACEBAR to begin]",
	}

	distractionPrompt = "Type your answer and press ENTER:"

	distractionDone = []string{
		"Task 2 is completed!",
		"Please notify the researcher.",
		"",
		"[Press SPACEBAR to continue]",
	}

	recallInstructions = []string{
		"For each trial, you will see the first two words from the previous phase.",
		"Your task is to type the third word you remembered in the original set.",
		"After typing, press ENTER to submit your answer.",
		"",
		"[Press the SPACEBAR to begin]",
	}

	recallPrompt = "Type the 3rd word from the set and press ENTER:"

	// Wide gaps keep the two cues visually separate.
	cueGap = "          "

	finalText = []string{
		"Task 3 is completed!",
		"Thank you for your participation.",
		"",
		"Please notify the researcher.",
	}
)
