package prompt

// SystemPrompt frames every conversation with the model.
const SystemPrompt = `You are a job portal assistant helping users understand job opportunities.
Be concise and factual in your responses.`

const jobSummaryTmpl = `Summarize the job posting for %s at %s. Include key responsibilities and requirements.`

const companyAnalysisTmpl = `Analyze %s based on the following metrics:
    - Company Rating: %s
    - Culture and Values: %s
    - Work/Life Balance: %s
    - Career Opportunities: %s`

const benefitsAnalysisTmpl = `Analyze the benefits package at %s including:
    - Benefits Rating: %s
    - Employee Reviews
    - Compensation Range`

const cultureInsightsTmpl = `Provide insights about the company culture at %s based on:
    - Pros mentioned by employees
    - Cons mentioned by employees
    - Overall recommendations`

const jobStatsTmpl = `Analyze the job market statistics for keyword '%s':
    Total Jobs: %d
    Average Salary: %s
    Salary Range: %s - %s

    Top Locations:
    %s

    Top Companies Hiring:
    %s
    `

const benefitsTrendsTmpl = `Analyze the most common benefits offered for %s positions:

    %s

    What makes these benefits stand out and how do they compare to industry standards?
    `

const titleTrendsTmpl = `Analyze the trending job titles related to %s:

    %s

    What do these titles indicate about current industry trends and skill requirements?
    `

const locationAnalysisTmpl = `Analyze job opportunities in %s:

    Total Jobs Available: %d
    Average Salary: %s
    Salary Range: %s - %s

    Top Companies Hiring:
    %s

    Most Common Job Titles:
    %s

    What insights can be drawn about the job market in %s?
    `
