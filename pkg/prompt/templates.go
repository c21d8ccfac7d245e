package prompt

import "strings"

const frontendTemplate = `You are an expert frontend developer specializing in creating pixel-perfect, **responsive** UIs with HTML and Tailwind CSS.
Your task is to generate a single, complete, standalone HTML file based on a hierarchical component structure.

**CRITICAL: Your output MUST be mobile-first.** Use base utility classes for mobile styles, 'md:' prefixes for tablet styles, and 'lg:' prefixes for desktop styles.

**Requirements:**
1. **Structure:** The file must be a valid HTML5 document.
2. **Styling:** Use Tailwind CSS via the official CDN. You MUST use Tailwind utility classes for all styling.
3. **Responsiveness:** Many properties are provided as objects with 'mobile', 'tablet', and 'desktop' keys.
   - **Mobile:** Apply the 'mobile' value directly (e.g., 'text-lg').
   - **Tablet:** Apply the 'tablet' value with the 'md:' prefix (e.g., 'md:text-xl').
   - **Desktop:** Apply the 'desktop' value with the 'lg:' prefix (e.g., 'lg:text-2xl').
   - **Optimization:** If a value is the same across breakpoints, you don't need to repeat it. E.g., if mobile and tablet are identical, just define the mobile class, and then the desktop class with 'lg:'.
4. **Layout:** Pay close attention to parent-child relationships and responsive layout properties.
   - For 'FlexContainer' and 'Card', a 'gridColumns' property of '{ mobile: 1, tablet: 2, desktop: 4 }' must translate to classes: 'grid-cols-1 md:grid-cols-2 lg:grid-cols-4'.
   - A 'flexDirection' of '{ mobile: column, tablet: column, desktop: row }' must translate to 'flex-col lg:flex-row'.
   - Apply other flex/grid properties ('justifyContent', 'alignItems', 'gap') responsively.
5. **Properties:** Meticulously apply all specified properties (padding, margin, color, fontSize, etc.) using their corresponding Tailwind classes, following the responsive rules above. For numeric values (px), map them to Tailwind's spacing/font-size scale where possible (e.g., 16px -> p-4, text-base; 24px -> p-6, text-xl).
6. **Aesthetics:** The body should have a dark theme ('bg-slate-900'). Ensure the output is professional, modern, and visually appealing.
7. **Purity:** Output only pure HTML with Tailwind classes. No JavaScript, React, or JSX.

**User's Design Hierarchy:**
{{DESIGN}}

**Example Responsive Translation:**
- A property 'paddingTop: { mobile: 8, tablet: 16, desktop: 24 }' should become class string 'pt-2 md:pt-4 lg:pt-6'.
- A property 'textAlign: { mobile: center, tablet: center, desktop: left }' should become class string 'text-center lg:text-left'.

Now, generate the complete HTML file based on the user's design.
`

const backendTemplate = `You are an expert backend developer specializing in Node.js, Express, and Prisma.
Based on the user's request, generate a complete, production-ready 'server.js' file and a 'schema.prisma' file.

**User Request:** "{{REQUEST}}"

**Instructions for 'server.js':**
- Set up a basic Express server.
- Enable CORS using the 'cors' package.
- Import and instantiate PrismaClient.
- Create full boilerplate CRUD (Create, Read, Update, Delete) API endpoints for each model.
- Implement robust error handling using try/catch blocks for all database operations.
- Return appropriate HTTP status codes (e.g., 200, 201, 400, 404, 500).
- Include basic data validation for required fields on CREATE and UPDATE routes.

**Instructions for 'schema.prisma':**
- Define models that accurately reflect the user's request.
- Include appropriate data types, relations, and default values (like '@default(now())' for timestamps).

**Output Format:**
Provide the output in two separate, clearly labeled markdown code blocks. Include a third block listing the necessary npm dependencies.

### Required Dependencies
~~~bash
npm install express cors @prisma/client
npm install prisma --save-dev
npx prisma init
~~~

### schema.prisma
~~~prisma
// provider and generator
datasource db {
  provider = "sqlite"
  url      = "file:./dev.db"
}
generator client {
  provider = "prisma-client-js"
}

// Your models here...
~~~

### server.js
~~~javascript
const express = require('express');
const { PrismaClient } = require('@prisma/client');
const cors = require('cors');

const prisma = new PrismaClient();
const app = express();

app.use(cors());
app.use(express.json());

// Your routes here...

const PORT = process.env.PORT || 3000;
app.listen(PORT, () => {
  console.log('Server is running on port ' + PORT);
});
~~~
`

// Frontend wraps a design description (see Describe) in the request for a
// single mobile-first HTML file styled with Tailwind.
func Frontend(description string) string {
	return strings.Replace(frontendTemplate, "{{DESIGN}}", description, 1)
}

// Backend wraps a free-text request in the request for an Express server and
// a Prisma schema.
func Backend(request string) string {
	return strings.Replace(backendTemplate, "{{REQUEST}}", request, 1)
}
