package service

// analysisPrompt asks for a structured Markdown review of a paper. {TEXT} is
// replaced with the (possibly truncated) paper text.
const analysisPrompt = `You are an expert academic research analyst. Your task is to provide a comprehensive, structured analysis of the research paper text provided below.

<instructions>
Analyze the paper thoroughly and provide your response in the following structured format using proper Markdown:

## 📋 Executive Summary
A 2-3 sentence high-level overview of what this paper is about.

## 🎯 Research Objective
- **Primary Goal**: What is the main research question or hypothesis?
- **Scope**: What is the scope and boundaries of the research?

## 📊 Methodology
- **Approach**: Describe the research approach (qualitative, quantitative, mixed)
- **Methods**: List specific methods, tools, or frameworks used
- **Data**: Describe data sources, sample size, or experimental setup

## 💡 Key Findings
Present the main findings as a numbered list:
1. First major finding
2. Second major finding
3. (Continue as needed)

## 🔬 Technical Contributions
What are the novel technical or theoretical contributions?

## ⚠️ Limitations
What are the acknowledged or apparent limitations of this research?

## 🚀 Future Directions
What opportunities for future work does this research open up?

## 📈 Impact Assessment
Rate the potential impact (Low/Medium/High) and explain briefly.
</instructions>

<paper_text>
{TEXT}
</paper_text>

Provide your analysis now, ensuring proper Markdown formatting with headers, bullet points, and emphasis where appropriate.`

// plagiarismPrompt asks for a short integrity report. {TEXT} is replaced
// with the submitted text.
const plagiarismPrompt = `You are an academic integrity expert. Analyze this text and provide a CONCISE report.

<instructions>
Be brief and direct. Use this EXACT format with NO TABLES:

## 📊 Integrity Scores

- **Originality Score**: X/100 🟢/🟡/🔴
- **AI Content Likelihood**: X% 🟢/🟡/🔴
- **Citation Quality**: X/100 🟢/🟡/🔴

**Overall Verdict**: ✅ PASS / ⚠️ REVIEW / 🚫 FLAG

---

## 🔍 Quick Analysis

**AI Detection**: [1-2 sentences about AI patterns detected or "No significant AI patterns detected"]

**Originality Concerns**: [1-2 sentences or "None detected"]

**Citation Issues**: [1-2 sentences or "Citations appear adequate"]

---

## ✅ Recommendations
1. [First recommendation]
2. [Second recommendation]
</instructions>

<text>
{TEXT}
</text>

Respond with the analysis now. Keep it SHORT. Do NOT use tables.`
