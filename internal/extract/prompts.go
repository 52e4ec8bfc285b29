package extract

import "strings"

const extractPromptTemplate = `
You are extracting *transaction line items* from a Canadian bank statement PDF.

Return ONLY valid JSON (no markdown, no commentary) in this exact shape:

{
  "bank": "<bank name>",
  "account_type": "credit_card" | "deposit_account",
  "transactions": [
    {"date":"YYYY-MM-DD","description":"...","amount": -12.34}
  ]
}

Rules:
- Extract ONLY actual transactions (exclude balances, payments due, interest summaries, totals, rewards, messages).
- Keep the sign exactly as the statement implies:
  - For deposit accounts: withdrawals are usually negative, deposits positive (as shown).
  - For credit cards: purchases positive, payments/credits negative (as shown).
- Normalize date to YYYY-MM-DD. If year is missing, infer from statement context.
- Keep description short but faithful (1 line).
`

// extractPrompt substitutes the bank name hint into the extraction prompt.
func extractPrompt(bank string) string {
	return strings.Replace(extractPromptTemplate, "<bank name>", bank, 1)
}
